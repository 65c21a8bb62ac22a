package service

import (
	"context"
	"testing"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/stretchr/testify/suite"
)

type PropertyServiceSuite struct {
	suite.Suite
	ctx  context.Context
	repo *memoryPropertyRepo
	svc  PropertyService
}

func TestPropertyServiceSuite(t *testing.T) {
	suite.Run(t, new(PropertyServiceSuite))
}

func (s *PropertyServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = &memoryPropertyRepo{}
	s.svc = NewPropertyService(s.repo, nil)
}

func (s *PropertyServiceSuite) seed(cities ...string) []*domain.Property {
	properties := make([]*domain.Property, 0, len(cities))
	for _, city := range cities {
		properties = append(properties, fakeProperty(city))
	}
	n, err := s.svc.Import(s.ctx, properties)
	s.Require().NoError(err)
	s.Require().Equal(len(cities), n)
	return properties
}

func (s *PropertyServiceSuite) kind(err error) domain.ErrorKind {
	s.Require().Error(err)
	return domain.AsAppError(err).Kind
}

func (s *PropertyServiceSuite) TestUpvoteTwiceAddsTwo() {
	property := s.seed("Austin")[0]

	_, err := s.svc.Upvote(s.ctx, property.ID)
	s.Require().NoError(err)
	_, err = s.svc.Upvote(s.ctx, property.ID)
	s.Require().NoError(err)

	stored, err := s.svc.GetProperty(s.ctx, property.ID)
	s.Require().NoError(err)
	s.Equal(2, stored.Upvotes)
	s.Equal(0, stored.Downvotes)
}

func (s *PropertyServiceSuite) TestDownvote() {
	property := s.seed("Austin")[0]

	updated, err := s.svc.Downvote(s.ctx, property.ID)
	s.Require().NoError(err)
	s.Equal(1, updated.Downvotes)
}

func (s *PropertyServiceSuite) TestVoteMissingProperty() {
	_, err := s.svc.Upvote(s.ctx, "missing")
	s.Equal(domain.KindNotFound, s.kind(err))
}

func (s *PropertyServiceSuite) TestAddThenDeleteCommentRestoresLength() {
	property := s.seed("Austin")[0]
	_, err := s.svc.AddComment(s.ctx, property.ID, "first")
	s.Require().NoError(err)

	before, err := s.svc.GetProperty(s.ctx, property.ID)
	s.Require().NoError(err)

	added, err := s.svc.AddComment(s.ctx, property.ID, "Great yard")
	s.Require().NoError(err)
	s.Len(added.Comments, len(before.Comments)+1)

	comment := added.Comments[len(added.Comments)-1]
	s.NotEmpty(comment.ID)
	s.False(comment.CreatedAt.IsZero())

	after, err := s.svc.DeleteComment(s.ctx, property.ID, comment.ID)
	s.Require().NoError(err)
	s.Len(after.Comments, len(before.Comments))
	s.Equal("first", after.Comments[0].Text)
}

func (s *PropertyServiceSuite) TestEditComment() {
	property := s.seed("Austin")[0]
	added, err := s.svc.AddComment(s.ctx, property.ID, "typo")
	s.Require().NoError(err)
	id := added.Comments[0].ID

	edited, err := s.svc.EditComment(s.ctx, property.ID, id, "fixed")
	s.Require().NoError(err)
	s.Equal("fixed", edited.Comments[0].Text)
	s.Equal(id, edited.Comments[0].ID)
}

func (s *PropertyServiceSuite) TestCommentErrors() {
	property := s.seed("Austin")[0]

	_, err := s.svc.AddComment(s.ctx, property.ID, "   ")
	s.Equal(domain.KindValidation, s.kind(err))

	_, err = s.svc.DeleteComment(s.ctx, property.ID, "nope")
	s.Equal(domain.KindNotFound, s.kind(err))

	_, err = s.svc.EditComment(s.ctx, property.ID, "nope", "text")
	s.Equal(domain.KindNotFound, s.kind(err))

	_, err = s.svc.AddComment(s.ctx, "missing", "text")
	s.Equal(domain.KindNotFound, s.kind(err))
}

func (s *PropertyServiceSuite) TestSearchByCity() {
	s.seed("Austin", "Dallas", "Austin", "Houston")

	matches, err := s.svc.Search(s.ctx, domain.SearchCriteria{City: "Austin"})
	s.Require().NoError(err)
	s.Len(matches, 2)
	for _, p := range matches {
		s.Equal("Austin", p.City)
	}

	all, err := s.svc.Search(s.ctx, domain.SearchCriteria{})
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *PropertyServiceSuite) TestPaginate() {
	s.seed("A", "B", "C", "D", "E")

	page, err := s.svc.Paginate(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Equal(5, page.TotalCount)
	s.Equal(2, page.CurrentPage)
	s.Equal(3, page.TotalPages)
	s.Require().Len(page.Properties, 2)
	s.Equal("C", page.Properties[0].City)

	last, err := s.svc.Paginate(s.ctx, 3, 2)
	s.Require().NoError(err)
	s.Len(last.Properties, 1)
}

func (s *PropertyServiceSuite) TestPaginateValidation() {
	_, err := s.svc.Paginate(s.ctx, 0, 20)
	s.Equal(domain.KindValidation, s.kind(err))

	_, err = s.svc.Paginate(s.ctx, 1, 101)
	s.Equal(domain.KindValidation, s.kind(err))

	_, err = s.svc.Paginate(s.ctx, 1, 0)
	s.Equal(domain.KindValidation, s.kind(err))
}

func (s *PropertyServiceSuite) TestImportRejectsNegativeCounters() {
	bad := fakeProperty("Austin")
	bad.Upvotes = -1

	n, err := s.svc.Import(s.ctx, []*domain.Property{fakeProperty("Austin"), bad})
	s.Equal(domain.KindValidation, s.kind(err))
	s.Equal(1, n)
}

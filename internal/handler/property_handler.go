package handler

import (
	"net/http"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/service"
	"github.com/gin-gonic/gin"
)

// PropertyHandler handles listing, comment and vote requests
type PropertyHandler struct {
	propertyService service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Paginate returns one page of listings
func (h *PropertyHandler) Paginate(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.propertyService.Paginate(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Search filters listings by zip, city and address
func (h *PropertyHandler) Search(c *gin.Context) {
	var criteria domain.SearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		bindError(c, err)
		return
	}

	properties, err := h.propertyService.Search(c.Request.Context(), criteria)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// Get returns a single listing
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.propertyService.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// AddComment appends a comment
func (h *PropertyHandler) AddComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	property, err := h.propertyService.AddComment(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// EditComment replaces a comment's text
func (h *PropertyHandler) EditComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	property, err := h.propertyService.EditComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// DeleteComment removes a comment
func (h *PropertyHandler) DeleteComment(c *gin.Context) {
	property, err := h.propertyService.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Upvote increments the upvote counter
func (h *PropertyHandler) Upvote(c *gin.Context) {
	property, err := h.propertyService.Upvote(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Downvote increments the downvote counter
func (h *PropertyHandler) Downvote(c *gin.Context) {
	property, err := h.propertyService.Downvote(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, property)
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/BilawalArif/redfin-clone/internal/service"
	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "migrate")
	assert.Contains(t, out, "import")
	assert.Contains(t, out, "promote")
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"migrate without direction", []string{"migrate"}},
		{"migrate sideways", []string{"migrate", "sideways"}},
		{"import without file", []string{"import"}},
		{"promote without email", []string{"promote"}},
		{"promote two emails", []string{"promote", "a@example.com", "b@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestImportFailsBeforeConnectingOnBadFile(t *testing.T) {
	_, err := executeCommand("import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o600))

	_, err = executeCommand("import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding properties")
}

func TestDecodeProperties(t *testing.T) {
	properties, err := decodeProperties(strings.NewReader(`[
		{"address": "1 Main St", "city": "Austin", "zip": 78701, "price": 450000, "beds": 3},
		{"address": "2 Elm St", "city": "Dallas", "zip": 75201, "imageUrl": "https://img.example/2.jpg"}
	]`))
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "Austin", properties[0].City)
	assert.Equal(t, 78701, properties[0].Zip)
	assert.Equal(t, 3, properties[0].Beds)
	assert.Equal(t, "https://img.example/2.jpg", properties[1].ImageURL)

	_, err = decodeProperties(strings.NewReader(`[]`))
	assert.Error(t, err)

	_, err = decodeProperties(strings.NewReader(`[null]`))
	assert.Error(t, err)
}

func TestImportPropertiesStopsAtFirstFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	insert := regexp.QuoteMeta("INSERT INTO properties")
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WillReturnError(errors.New("connection reset"))

	repo := repository.NewPropertyRepository(database.NewPostgresFromDB(db))
	svc := service.NewPropertyService(repo, nil)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	out := new(bytes.Buffer)
	cmd.SetOut(out)

	properties := []*domain.Property{
		{Address: "1 Main St", City: "Austin"},
		{Address: "2 Elm St", City: "Dallas"},
		{Address: "3 Oak St", City: "Houston"},
	}

	err = importProperties(cmd, svc, properties)
	require.Error(t, err)
	assert.Equal(t, "Imported 1 of 3 properties\n", out.String())
	assert.NotEmpty(t, properties[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type memoryUsers struct {
	users   map[string]*domain.User
	updated int
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *memoryUsers) Update(_ context.Context, user *domain.User) error {
	m.updated++
	m.users[user.Email] = user
	return nil
}

func TestPromoteUser(t *testing.T) {
	store := &memoryUsers{users: map[string]*domain.User{
		"jane@example.com": {Email: "jane@example.com", Role: domain.RoleUser},
	}}
	ctx := context.Background()

	user, err := promoteUser(ctx, store, "  Jane@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, 1, store.updated)

	// Already admin, nothing to write
	_, err = promoteUser(ctx, store, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, store.updated)

	_, err = promoteUser(ctx, store, "nobody@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user with email")
}

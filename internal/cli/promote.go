package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/BilawalArif/redfin-clone/internal/utils"
	"github.com/spf13/cobra"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to a user",
		Args:  cobra.ExactArgs(1),
		RunE:  runPromote,
	}
}

func runPromote(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB(db)

	user, err := promoteUser(cmd.Context(), repository.NewUserRepository(db), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
	return nil
}

func promoteUser(ctx context.Context, users userStore, email string) (*domain.User, error) {
	user, err := users.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no user with email %s", email)
		}
		return nil, err
	}

	if user.Role == domain.RoleAdmin {
		return user, nil
	}

	user.Role = domain.RoleAdmin
	if err := users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("promoting %s: %w", email, err)
	}

	return user, nil
}

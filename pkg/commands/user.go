package commands

import (
	"context"
	"fmt"
	"io"

	"todoshell/pkg/models"
	"todoshell/pkg/storage"
)

// HandleLogin stores user as the signed-in account
func HandleLogin(ctx context.Context, users *storage.UserStorage, out io.Writer, user models.User) error {
	if user.Name == "" && user.Email == "" {
		return fmt.Errorf("a name or an email is required")
	}
	if err := users.SaveUser(ctx, user); err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged in as %s\n", user.DisplayName())
	return nil
}

// HandleLogout removes the stored account
func HandleLogout(ctx context.Context, users *storage.UserStorage, out io.Writer) error {
	if err := users.LogoutUser(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out")
	return nil
}

// HandleWhoami prints the stored account
func HandleWhoami(ctx context.Context, users *storage.UserStorage, out io.Writer) error {
	user, ok, err := users.LoadUser(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Not logged in")
		return nil
	}
	fmt.Fprintf(out, "%s\n", user.DisplayName())
	if user.Email != "" && user.Email != user.DisplayName() {
		fmt.Fprintf(out, "email: %s\n", user.Email)
	}
	return nil
}

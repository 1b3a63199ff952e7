package cli

import (
	"context"
	"fmt"
)

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: register <username>")
	}
	password, err := readPassword("password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("confirm: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := a.auth.Register(ctx, args[0], password); err != nil {
		return err
	}
	a.printf("registered and logged in as %s\n", args[0])
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login <username>")
	}
	password, err := readPassword("password: ")
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, args[0], password); err != nil {
		return err
	}
	a.printf("logged in as %s\n", args[0])
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("logged out\n")
	return nil
}

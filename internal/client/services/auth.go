package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

// AuthService handles account lifecycle and master key management.
//
// The master key is derived client-side from the password and a salt
// hashed from the username; the server only ever sees the password for its
// own session authentication and never the derived key.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	// Resume restores the master key persisted by a previous login.
	Resume(ctx context.Context, username string) error
	Logout(ctx context.Context) error
}

type authService struct {
	s *Session
}

func NewAuthService(s *Session) AuthService {
	return &authService{s: s}
}

func deriveMasterKey(username, password string) ([]byte, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: empty username", common.ErrValidation)
	}
	return cryptox.DeriveKey([]byte(password), cryptox.SaltFromID(username))
}

func (a *authService) Register(ctx context.Context, username, password string) error {
	masterKey, err := deriveMasterKey(username, password)
	if err != nil {
		return err
	}
	if err := a.s.api.Register(ctx, username, password); err != nil {
		return fmt.Errorf("registration: %w", err)
	}
	return a.install(ctx, username, masterKey)
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	masterKey, err := deriveMasterKey(username, password)
	if err != nil {
		return err
	}
	if err := a.s.api.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.install(ctx, username, masterKey)
}

func (a *authService) Resume(ctx context.Context, username string) error {
	masterKey, err := a.s.keys.MasterKey(ctx)
	if err != nil {
		return fmt.Errorf("no stored session: %w", err)
	}
	a.s.masterKey = masterKey
	a.s.username = username
	return nil
}

func (a *authService) install(ctx context.Context, username string, masterKey []byte) error {
	if err := a.s.keys.SetMasterKey(ctx, masterKey); err != nil {
		return fmt.Errorf("persisting master key: %w", err)
	}
	a.s.masterKey = masterKey
	a.s.username = username
	a.s.log.Info(ctx, "logged in", "username", username)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	common.WipeByteArray(a.s.masterKey)
	a.s.masterKey = nil
	a.s.username = ""
	a.s.repo.Reset()
	if err := a.s.keys.Clear(ctx); err != nil {
		return fmt.Errorf("clearing keystore: %w", err)
	}
	return nil
}

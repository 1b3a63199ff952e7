// Package api defines the client-side adapter for the PhotoVault server
// HTTP API. The server only ever sees opaque envelopes and encrypted blobs;
// this package carries them back and forth and categorizes failures.
package api

import (
	"context"

	"github.com/dmitrijs2005/photovault/internal/client/models"
)

// ShareUpload is the payload of a share upsert: the encrypted share
// envelope plus the ids the server should treat as accessible for holders
// of the share.
type ShareUpload struct {
	ID       string
	Password string
	Envelope *models.Envelope
	ItemIDs  []string
}

// Client is the transport surface the repository and services depend on.
// Implementations map HTTP failures onto the sentinel errors in
// internal/common: 401 to ErrUnauthorized, 404 to ErrNotFound (except
// GetItem, which reports absence as (nil, nil)), anything else unexpected
// to ErrTransport.
type Client interface {
	Close() error

	// Ping checks server reachability.
	Ping(ctx context.Context) error

	// Account endpoints. Both install a session cookie on success.
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error

	// Encrypted item endpoints (/text).
	ListItems(ctx context.Context) ([]string, error)
	GetItem(ctx context.Context, id string) (*models.Envelope, error)
	PutItem(ctx context.Context, id string, env *models.Envelope) error
	DeleteItem(ctx context.Context, id string) error

	// Encrypted blob endpoints (/file).
	UploadFile(ctx context.Context, id string, data []byte) error
	GetFile(ctx context.Context, id string) ([]byte, error)
	DeleteFile(ctx context.Context, id string) error

	// Share endpoints (/share).
	PutShare(ctx context.Context, upload *ShareUpload) error
	GetShare(ctx context.Context, id string) (*models.Envelope, error)
	DeleteShare(ctx context.Context, id string) error
	AuthorizeShare(ctx context.Context, id, password string) (bool, error)
	ShareAuthorized(ctx context.Context, id string) (bool, error)
}

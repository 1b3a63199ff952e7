// Package apitest provides an in-memory api.Client for tests. It mimics
// the server contract closely enough to drive the repository and the
// entity services end to end without a network.
package apitest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/photovault/internal/client/api"
	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
)

// FakeClient stores envelopes, blobs and shares in maps. All methods are
// safe for concurrent use. Error injection fields let tests simulate
// transport failures on specific calls.
type FakeClient struct {
	mu sync.Mutex

	Users  map[string]string
	Items  map[string]models.Envelope
	Files  map[string][]byte
	Shares map[string]*api.ShareUpload
	Grants map[string]bool

	LoggedIn bool

	FailGetItem    error
	FailPutItem    error
	FailUploadFile error
	FailPutShare   error

	PutItemCalls int
	DeletedItems []string
	DeletedFiles []string
}

var _ api.Client = (*FakeClient)(nil)

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Users:  make(map[string]string),
		Items:  make(map[string]models.Envelope),
		Files:  make(map[string][]byte),
		Shares: make(map[string]*api.ShareUpload),
		Grants: make(map[string]bool),
	}
}

func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Ping(ctx context.Context) error { return nil }

func (f *FakeClient) Register(ctx context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Users[username]; exists {
		return common.ErrAlreadyExists
	}
	f.Users[username] = password
	f.LoggedIn = true
	return nil
}

func (f *FakeClient) Login(ctx context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.Users[username]; !ok || stored != password {
		return common.ErrUnauthorized
	}
	f.LoggedIn = true
	return nil
}

func (f *FakeClient) ListItems(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.Items))
	for id := range f.Items {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *FakeClient) GetItem(ctx context.Context, id string) (*models.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailGetItem != nil {
		return nil, f.FailGetItem
	}
	env, ok := f.Items[id]
	if !ok {
		return nil, nil
	}
	return &env, nil
}

func (f *FakeClient) PutItem(ctx context.Context, id string, env *models.Envelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailPutItem != nil {
		return f.FailPutItem
	}
	f.PutItemCalls++
	f.Items[id] = *env
	return nil
}

func (f *FakeClient) DeleteItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Items, id)
	f.DeletedItems = append(f.DeletedItems, id)
	return nil
}

func (f *FakeClient) UploadFile(ctx context.Context, id string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUploadFile != nil {
		return f.FailUploadFile
	}
	f.Files[id] = append([]byte(nil), data...)
	return nil
}

func (f *FakeClient) GetFile(ctx context.Context, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Files[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (f *FakeClient) DeleteFile(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Files, id)
	f.DeletedFiles = append(f.DeletedFiles, id)
	return nil
}

func (f *FakeClient) PutShare(ctx context.Context, upload *api.ShareUpload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailPutShare != nil {
		return f.FailPutShare
	}
	clone := *upload
	clone.ItemIDs = append([]string(nil), upload.ItemIDs...)
	f.Shares[upload.ID] = &clone
	return nil
}

func (f *FakeClient) GetShare(ctx context.Context, id string) (*models.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	share, ok := f.Shares[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return share.Envelope, nil
}

func (f *FakeClient) DeleteShare(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Shares, id)
	delete(f.Grants, id)
	return nil
}

func (f *FakeClient) AuthorizeShare(ctx context.Context, id, password string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	share, ok := f.Shares[id]
	if !ok || share.Password != password {
		return false, nil
	}
	f.Grants[id] = true
	return true, nil
}

func (f *FakeClient) ShareAuthorized(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Grants[id], nil
}

// FileCount returns the number of stored blobs.
func (f *FakeClient) FileCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Files)
}

// AccessibleItems returns the accessible id set declared for a share.
func (f *FakeClient) AccessibleItems(shareID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if share, ok := f.Shares[shareID]; ok {
		return append([]string(nil), share.ItemIDs...)
	}
	return nil
}

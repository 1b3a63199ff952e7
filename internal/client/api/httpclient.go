package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
)

// DefaultTimeout bounds every request when the configuration does not
// set a timeout of its own.
const DefaultTimeout = 30 * time.Second

// HTTPClient implements Client over the JSON/multipart server API.
// A cookie jar carries the session across requests.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the server at baseURL. A non-positive
// timeout selects DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one request and decodes a JSON response into out (when out is
// non-nil). Status codes are mapped onto sentinel errors; callers that can
// tolerate 404 check errors.Is(err, common.ErrNotFound).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrEncoding, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, method, path); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: response body: %v", common.ErrEncoding, err)
		}
	}
	return nil
}

func statusError(code int, method, path string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s", common.ErrUnauthorized, method, path)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", common.ErrNotFound, method, path)
	default:
		return fmt.Errorf("%w: %s %s: status %d", common.ErrTransport, method, path, code)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/user", credentialsRequest{Username: username, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/user/auth", credentialsRequest{Username: username, Password: password}, nil)
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.do(ctx, http.MethodGet, "/text", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

type itemResponse struct {
	ID     string `json:"id"`
	Base64 string `json:"base64"`
	Nonce  string `json:"nonce"`
}

// GetItem returns (nil, nil) when the server has no item under id.
func (c *HTTPClient) GetItem(ctx context.Context, id string) (*models.Envelope, error) {
	var resp itemResponse
	err := c.do(ctx, http.MethodGet, "/text/"+url.PathEscape(id), nil, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &models.Envelope{Nonce: resp.Nonce, Base64: resp.Base64}, nil
}

type itemRequest struct {
	Base64 string `json:"base64"`
	Nonce  string `json:"nonce"`
}

func (c *HTTPClient) PutItem(ctx context.Context, id string, env *models.Envelope) error {
	return c.do(ctx, http.MethodPost, "/text/"+url.PathEscape(id), itemRequest{Base64: env.Base64, Nonce: env.Nonce}, nil)
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/text/"+url.PathEscape(id), nil, nil)
}

// UploadFile sends one encrypted blob as a multipart form; the field name
// carries the blob id, matching the server contract.
func (c *HTTPClient) UploadFile(ctx context.Context, id string, data []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(id, id)
	if err != nil {
		return fmt.Errorf("%w: multipart: %v", common.ErrTransport, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("%w: multipart: %v", common.ErrTransport, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("%w: multipart: %v", common.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file", &buf)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: POST /file: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()
	return statusError(resp.StatusCode, http.MethodPost, "/file")
}

func (c *HTTPClient) GetFile(ctx context.Context, id string) ([]byte, error) {
	path := "/file/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", common.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, http.MethodGet, path); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", common.ErrTransport, path, err)
	}
	return data, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/file/"+url.PathEscape(id), nil, nil)
}

type shareRequest struct {
	ID       string   `json:"id"`
	Password string   `json:"password"`
	Base64   string   `json:"base64"`
	Nonce    string   `json:"nonce"`
	Items    []string `json:"items"`
}

func (c *HTTPClient) PutShare(ctx context.Context, upload *ShareUpload) error {
	return c.do(ctx, http.MethodPost, "/share", shareRequest{
		ID:       upload.ID,
		Password: upload.Password,
		Base64:   upload.Envelope.Base64,
		Nonce:    upload.Envelope.Nonce,
		Items:    upload.ItemIDs,
	}, nil)
}

func (c *HTTPClient) GetShare(ctx context.Context, id string) (*models.Envelope, error) {
	var resp itemRequest
	if err := c.do(ctx, http.MethodGet, "/share/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &models.Envelope{Nonce: resp.Nonce, Base64: resp.Base64}, nil
}

func (c *HTTPClient) DeleteShare(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/share/"+url.PathEscape(id), nil, nil)
}

type sharePasswordRequest struct {
	Password string `json:"password"`
}

// AuthorizeShare proves knowledge of the share password; the grant is
// stored in the server session. A wrong password yields (false, nil).
func (c *HTTPClient) AuthorizeShare(ctx context.Context, id, password string) (bool, error) {
	err := c.do(ctx, http.MethodPost, "/share/"+url.PathEscape(id)+"/auth", sharePasswordRequest{Password: password}, nil)
	if err != nil {
		if isUnauthorized(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ShareAuthorized reports whether the current session already holds a
// grant for the share.
func (c *HTTPClient) ShareAuthorized(ctx context.Context, id string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/share/"+url.PathEscape(id)+"/auth", nil, nil)
	if err != nil {
		if isUnauthorized(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

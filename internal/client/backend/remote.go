package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/xyz-asif/trackback/internal/client/store"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// HTTPDoer is the part of *http.Client the remote backend needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-success answer from the API that has no dedicated
// domain error.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return e.Message
}

type successEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Remote talks to a TrackBack API. The server is authoritative; the local
// store is only written after a successful response.
type Remote struct {
	baseURL string
	client  HTTPDoer
	store   *store.Store
	log     *logger.Logger

	mu    sync.Mutex
	token string
}

// NewRemote builds a remote backend for baseURL (e.g. http://localhost:8080/api).
// A nil client means http.DefaultClient.
func NewRemote(st *store.Store, baseURL string, client HTTPDoer, log *logger.Logger) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.Default()
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		store:   st,
		log:     log,
	}
}

func (r *Remote) Mode() string { return ModeBackend }

func (r *Remote) Signup(ctx context.Context, username, password string) error {
	status, _, apiErr, err := r.call(ctx, http.MethodPost, "/auth/signup", credentials{username, password}, false)
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return apperrors.ErrDuplicateUser
	}
	if apiErr != nil {
		return apiErr
	}
	return nil
}

func (r *Remote) Login(ctx context.Context, username, password string) error {
	status, data, apiErr, err := r.call(ctx, http.MethodPost, "/auth/login", credentials{username, password}, false)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return apperrors.ErrInvalidCredentials
	}
	if apiErr != nil {
		return apiErr
	}

	var res loginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("%w: decode login response: %v", apperrors.ErrBackendUnavailable, err)
	}

	r.mu.Lock()
	r.token = res.Token
	r.mu.Unlock()
	return nil
}

func (r *Remote) Logout(context.Context) {
	r.mu.Lock()
	r.token = ""
	r.mu.Unlock()
}

// Report posts the item and, on success, re-fetches the full listing into the
// local store. A failed re-fetch is logged; the report itself stands.
func (r *Remote) Report(ctx context.Context, item models.Item) error {
	status, _, apiErr, err := r.call(ctx, http.MethodPost, "/items/report", item, true)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return apperrors.ErrNotAuthenticated
	}
	if apiErr != nil {
		return apiErr
	}

	if err := r.Sync(ctx); err != nil {
		r.log.Warn("report %s stored but refresh failed: %v", item.ID, err)
	}
	return nil
}

// Sync replaces the local collections with the server's listing.
func (r *Remote) Sync(ctx context.Context) error {
	_, data, apiErr, err := r.call(ctx, http.MethodGet, "/items/all", nil, false)
	if err != nil {
		return err
	}
	if apiErr != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, apiErr)
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("%w: decode items: %v", apperrors.ErrBackendUnavailable, err)
	}

	return r.store.ReplaceFromSnapshot(items)
}

// call performs one request. Transport and decoding problems come back as
// err (wrapping ErrBackendUnavailable); a non-2xx answer comes back as apiErr.
func (r *Remote) call(ctx context.Context, method, path string, body any, authed bool) (int, json.RawMessage, *APIError, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		r.mu.Lock()
		token := r.token
		r.mu.Unlock()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, nil, fmt.Errorf("%w: read response: %v", apperrors.ErrBackendUnavailable, err)
	}

	r.log.Debug("%s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			env.Error = strings.TrimSpace(string(raw))
		}
		return resp.StatusCode, nil, &APIError{Status: resp.StatusCode, Message: env.Error, Code: env.Code}, nil
	}

	var env successEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp.StatusCode, nil, nil, fmt.Errorf("%w: decode response: %v", apperrors.ErrBackendUnavailable, err)
	}
	return resp.StatusCode, env.Data, nil, nil
}

// IsAPIError reports whether err is a server-side rejection and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

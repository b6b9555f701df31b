package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"teambridge/api-gateway/config"
)

// Gateway is the single long-lived handle to the hosted backend: table and
// view queries, file storage, edge-function invocation and authenticated-user
// lookup. It is configured with the base endpoint and the anon key only, is
// immutable after construction, and performs no retries of its own; retry
// policy belongs to each caller.
type Gateway struct {
	client  *supa.Client
	baseURL string
	anonKey string
	httpc   *http.Client
	log     *logrus.Logger
}

// New constructs a Gateway from the given Supabase config.
func New(cfg config.SupabaseConfig, log *logrus.Logger) (*Gateway, error) {
	client, err := config.NewSupabaseClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}, nil
}

// From starts a table or view query.
func (g *Gateway) From(table string) *postgrest.QueryBuilder {
	return g.client.From(table)
}

// UserFromToken resolves the identity behind a session access token. Callers
// thread the returned Identity into every mutation so that authorization
// preconditions are visible in each function's signature.
func (g *Gateway) UserFromToken(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrNotSignedIn
	}
	user, err := g.client.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		g.log.WithError(err).Warn("Token did not resolve to a user")
		return nil, ErrNotSignedIn
	}
	return &Identity{
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: accessToken,
	}, nil
}

// UploadObject uploads a binary to the given bucket under key, without
// overwrite permission. An already-taken key surfaces as ErrObjectExists.
func (g *Gateway) UploadObject(ctx context.Context, bucket, key string, data io.Reader) error {
	_, err := g.client.Storage.UploadFile(bucket, key, data)
	if err != nil {
		if isDuplicateObject(err) {
			return ErrObjectExists
		}
		return fmt.Errorf("uploading object %s: %w", key, err)
	}
	return nil
}

// RemoveObject deletes a storage object by key.
func (g *Gateway) RemoveObject(ctx context.Context, bucket, key string) error {
	_, err := g.client.Storage.RemoveFile(bucket, []string{key})
	if err != nil {
		return fmt.Errorf("removing object %s: %w", key, err)
	}
	return nil
}

// InvokeFunction calls a named edge function with a JSON body and decodes the
// JSON response into out (which may be nil when the caller only needs
// success/error). The caller's access token rides along when present so the
// function can apply its own server-side authorization; otherwise the anon
// key is used. Invocation over the functions REST endpoint follows the same
// shape as the storage calls the typed client does not cover.
func (g *Gateway) InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling %s request: %w", name, err)
	}

	url := fmt.Sprintf("%s/functions/v1/%s", g.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building %s request: %w", name, err)
	}
	g.setAuthHeaders(req, accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("invoking function %s: %w", name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.WithFields(logrus.Fields{
			"function":    name,
			"status_code": resp.StatusCode,
		}).Error("Edge function returned an error")
		return fmt.Errorf("function %s failed with status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", name, err)
	}
	return nil
}

// Rpc calls a Postgres function through the rest endpoint. The session token
// is forwarded so session-derived functions (is_admin) see the caller.
func (g *Gateway) Rpc(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error {
	payload := []byte("{}")
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling rpc %s request: %w", name, err)
		}
	}

	url := fmt.Sprintf("%s/rest/v1/rpc/%s", g.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building rpc %s request: %w", name, err)
	}
	g.setAuthHeaders(req, accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("calling rpc %s: %w", name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading rpc %s response: %w", name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rpc %s failed with status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding rpc %s response: %w", name, err)
	}
	return nil
}

func (g *Gateway) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", g.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+g.anonKey)
	}
}

func isDuplicateObject(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate") || strings.Contains(msg, "already exists")
}

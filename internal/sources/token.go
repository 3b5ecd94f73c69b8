// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// defaultTokenMargin is subtracted from the token's reported lifetime so a
// refresh happens before the server-side expiry. Koha issues one-hour
// tokens, which this turns into roughly fifty minutes of use.
const defaultTokenMargin = 10 * time.Minute

// tokenHolder caches an OAuth2 client-credentials token until it expires.
// Concurrent callers share one refresh via singleflight; the holder is safe
// for use from multiple goroutines.
type tokenHolder struct {
	endpoint     string
	clientID     string
	clientSecret string
	client       *http.Client
	margin       time.Duration

	// now is a test seam for expiry checks.
	now func() time.Time

	mu     sync.Mutex
	group  singleflight.Group
	token  string
	expiry time.Time
}

func newTokenHolder(endpoint, clientID, clientSecret string, client *http.Client, margin time.Duration) *tokenHolder {
	if margin <= 0 {
		margin = defaultTokenMargin
	}
	return &tokenHolder{
		endpoint:     endpoint,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
		margin:       margin,
		now:          time.Now,
	}
}

// Token returns a valid access token, fetching a fresh one when the cached
// token is absent or expired. Only one fetch is in flight at a time.
func (h *tokenHolder) Token(ctx context.Context) (string, error) {
	h.mu.Lock()
	if h.token != "" && h.now().Before(h.expiry) {
		tok := h.token
		h.mu.Unlock()
		return tok, nil
	}
	h.mu.Unlock()

	v, err, _ := h.group.Do("token", func() (any, error) {
		return h.fetch(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// fetch performs the client-credentials grant and caches the result.
func (h *tokenHolder) fetch(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {h.clientID},
		"client_secret": {h.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned HTTP %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}

	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	if lifetime <= h.margin {
		// Very short or absent lifetime: use the token once, never cache.
		lifetime = h.margin
	}

	h.mu.Lock()
	h.token = tr.AccessToken
	h.expiry = h.now().Add(lifetime - h.margin)
	h.mu.Unlock()

	return tr.AccessToken, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

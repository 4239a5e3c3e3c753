package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/briculinos/voyana/pkg/utils"
)

const amadeusBaseURL = "https://test.api.amadeus.com"

// amadeusAuth caches the OAuth token shared by the flight and lodging clients.
type amadeusAuth struct {
	http    *http.Client
	baseURL string
	key     string
	secret  string

	mu      sync.Mutex
	token   string
	expires time.Time
}

func newAmadeusAuth(httpClient *http.Client, baseURL, key, secret string) *amadeusAuth {
	return &amadeusAuth{http: httpClient, baseURL: baseURL, key: key, secret: secret}
}

func (a *amadeusAuth) accessToken(ctx context.Context) (string, error) {
	if a.key == "" || a.secret == "" {
		return "", utils.ErrProviderUnavailable
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != "" && time.Now().Before(a.expires) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.key)
	form.Set("client_secret", a.secret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("amadeus token request: status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("amadeus token decode: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("amadeus token response missing access_token")
	}

	a.token = body.AccessToken
	// Refresh a minute before the upstream expiry.
	a.expires = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return a.token, nil
}

// internal/common/auth/google.go
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ClientBlock is the inner object of a Google OAuth client-secrets file,
// under either the "installed" or "web" key.
type ClientBlock struct {
	ClientID     string   `json:"client_id"`
	ProjectID    string   `json:"project_id"`
	AuthURI      string   `json:"auth_uri"`
	TokenURI     string   `json:"token_uri"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
}

// ClientSecrets is a Google OAuth client-secrets file as downloaded from the
// cloud console. Exactly one of Installed or Web is set.
type ClientSecrets struct {
	Installed *ClientBlock `json:"installed"`
	Web       *ClientBlock `json:"web"`
}

// Block returns whichever client block is present.
func (c *ClientSecrets) Block() *ClientBlock {
	if c.Installed != nil {
		return c.Installed
	}
	return c.Web
}

// Kind returns "installed" or "web".
func (c *ClientSecrets) Kind() string {
	if c.Installed != nil {
		return "installed"
	}
	if c.Web != nil {
		return "web"
	}
	return ""
}

// LoadClientSecrets reads and parses a client-secrets file.
func LoadClientSecrets(path string) (*ClientSecrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var secrets ClientSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	if secrets.Installed == nil && secrets.Web == nil {
		return nil, fmt.Errorf("client secrets has neither 'installed' nor 'web' block")
	}

	return &secrets, nil
}

// Token is the token.json written by the one-time OAuth consent flow.
// Expiry is an RFC 3339-ish timestamp; the consent flow writes it without a
// zone suffix, so both forms are accepted.
type Token struct {
	AccessToken  string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
	Expiry       string   `json:"expiry"`
}

// LoadToken reads and parses a token file.
func LoadToken(path string) (*Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return &tok, nil
}

// ExpiryTime parses the token expiry. A missing expiry returns the zero time
// with ok=false.
func (t *Token) ExpiryTime() (time.Time, bool) {
	if t.Expiry == "" {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.999999", // naive timestamp written by the consent flow
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, t.Expiry); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// Expired reports whether the access token is past its expiry at now.
// An unparseable or missing expiry counts as expired.
func (t *Token) Expired(now time.Time) bool {
	exp, ok := t.ExpiryTime()
	if !ok {
		return true
	}
	return now.After(exp)
}

// HasRefreshToken reports whether a refresh token is present. Without one the
// consent flow has to be re-run once the access token lapses.
func (t *Token) HasRefreshToken() bool {
	return t.RefreshToken != ""
}

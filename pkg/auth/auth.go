// Package auth provides authentication support for HTTP requests.
//
//go:generate mockgen -destination=./mocks/auth.go . Authenticator
package auth

import "net/http"

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// APIKeyAuth represents authentication via an API key query parameter.
type APIKeyAuth struct {
	// Param is the name of the query parameter. Defaults to "key" when empty.
	Param string
	Key   string
}

// BasicAuth represents HTTP Basic Authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// HeaderAuth represents authentication via custom HTTP headers.
type HeaderAuth struct {
	Headers map[string]string
}

// BearerAuth represents Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	// APIKeyAuthType represents API-key query-parameter authentication.
	APIKeyAuthType Type = "api-key"
	// BasicAuthType represents HTTP Basic Authentication.
	BasicAuthType Type = "basic"
	// HeaderAuthType represents custom header-based authentication.
	HeaderAuthType Type = "header"
	// BearerAuthType represents Bearer token authentication.
	BearerAuthType Type = "bearer"
)

// DefaultAPIKeyParam is the query parameter the catalog API reads the key from.
const DefaultAPIKeyParam = "key"

// Apply adds the API key as a query parameter to the HTTP request.
func (a APIKeyAuth) Apply(req *http.Request) error {
	param := a.Param
	if param == "" {
		param = DefaultAPIKeyParam
	}
	query := req.URL.Query()
	query.Set(param, a.Key)
	req.URL.RawQuery = query.Encode()
	return nil
}

// Type returns the authentication type (APIKeyAuthType).
func (a APIKeyAuth) Type() Type { return APIKeyAuthType }

// Apply adds Basic Authentication headers to the HTTP request.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns the authentication type (BasicAuthType).
func (b BasicAuth) Type() Type { return BasicAuthType }

// Apply adds custom headers to the HTTP request.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns the authentication type (HeaderAuthType).
func (h HeaderAuth) Type() Type { return HeaderAuthType }

// Apply adds a Bearer token to the Authorization header of the HTTP request.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns the authentication type (BearerAuthType).
func (b BearerAuth) Type() Type { return BearerAuthType }

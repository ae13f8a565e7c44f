/*
 * Copyright 2026 Graphward, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package authorization validates bearer tokens against the JSON Web Key Set
// published by an OpenID Connect identity provider.
//
// A Validator fetches the provider's key set once, synchronously, when it is
// built — a provider that can't be reached at startup is a fatal
// misconfiguration — and from then on refreshes it on a timer.  Request
// validation only ever reads the cached set: a token signed with a key we
// haven't seen fails with ReasonUnknownKeyID rather than triggering a fetch,
// so request latency never couples to the identity provider.
package authorization

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Validation failure reasons carried by AuthError.
const (
	ReasonMissingHeader    = "missing_or_malformed_header"
	ReasonMalformedToken   = "malformed_token"
	ReasonUnknownKeyID     = "unknown_key_id"
	ReasonSignatureInvalid = "signature_invalid"
	ReasonExpired          = "expired"
	ReasonIssuerMismatch   = "issuer_mismatch"
	ReasonAudienceMismatch = "audience_mismatch"
	ReasonJWKSUnreachable  = "jwks_unreachable"
)

const (
	bearerPrefix   = "Bearer "
	discoveryPath  = "/.well-known/openid-configuration"
	defaultRefresh = time.Hour
	defaultTimeout = 10 * time.Second
)

// AuthError is a credential problem found while validating a request.  It is
// recoverable per-request and maps to HTTP 401 at the web layer.
type AuthError struct {
	Reason  string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func authErrorf(reason, format string, args ...interface{}) *AuthError {
	return &AuthError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Identity is what a successfully validated token proves about the caller.
// It lives in the request context for the duration of one request.
type Identity struct {
	Email  string
	Scopes []string
}

// Config is the validator configuration, captured at construction.
type Config struct {
	// Issuer is the identity provider base URL, e.g.
	// https://tenant.us.auth0.com.  The discovery document is resolved
	// relative to it and tokens must carry it verbatim in their iss claim.
	Issuer string

	// Audience a token's aud claim must equal or contain.
	Audience string

	// RefreshInterval between background key set re-fetches.
	// Defaults to one hour.
	RefreshInterval time.Duration

	// Timeout bounds each discovery/JWKS fetch so that server startup can't
	// hang indefinitely on a slow identity provider.  Defaults to 10s.
	Timeout time.Duration
}

// keySet is the cached JWKS plus when we fetched it.  It is replaced
// wholesale on refresh, never mutated, so concurrent readers always see
// either the old or the new complete set.
type keySet struct {
	jwks      *jose.JSONWebKeySet
	fetchedAt time.Time
}

// Validator validates bearer tokens against a cached, periodically
// refreshed key set.  Safe for concurrent use.
type Validator struct {
	issuer   string
	audience string
	jwksURI  string

	client *http.Client
	parser *jwt.Parser

	keys atomic.Pointer[keySet]

	refreshEvery time.Duration
	closer       chan struct{}
	closeOnce    sync.Once
}

var (
	errNoKeySet      = errors.New("no key set has been fetched")
	errMissingKeyID  = errors.New("token header has no kid")
	errUnknownKeyID  = errors.New("token signed with a key not present in the cached key set")
	errBadSigningKey = errors.New("key in key set is not usable for verification")
)

// New builds a Validator for the given issuer/audience.  It synchronously
// resolves the issuer's discovery document and fetches the key set it points
// at; an error here means the server must not start accepting traffic.
func New(cfg Config) (*Validator, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("authorization: issuer must be set")
	}
	if cfg.Audience == "" {
		return nil, errors.New("authorization: audience must be set")
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefresh
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	v := &Validator{
		issuer:       cfg.Issuer,
		audience:     cfg.Audience,
		client:       &http.Client{Timeout: cfg.Timeout},
		refreshEvery: cfg.RefreshInterval,
		closer:       make(chan struct{}),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
		),
	}

	uri, err := v.resolveJWKSURI()
	if err != nil {
		return nil, errors.Wrapf(err, "resolving jwks_uri for issuer %q", cfg.Issuer)
	}
	v.jwksURI = uri

	ks, err := v.fetchKeySet()
	if err != nil {
		return nil, errors.Wrapf(err, "fetching initial key set from %q", uri)
	}
	v.keys.Store(ks)

	go v.refreshLoop()
	return v, nil
}

// Close stops the background key refresh.  Validate keeps working with the
// last cached key set.
func (v *Validator) Close() {
	v.closeOnce.Do(func() { close(v.closer) })
}

// resolveJWKSURI fetches the issuer's OpenID discovery document and returns
// its jwks_uri field.
func (v *Validator) resolveJWKSURI() (string, error) {
	url := strings.TrimSuffix(v.issuer, "/") + discoveryPath

	resp, err := v.client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("GET %s returned status %s", url, resp.Status)
	}

	var doc struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", errors.Wrap(err, "decoding discovery document")
	}
	if doc.JWKSURI == "" {
		return "", errors.New("discovery document has no jwks_uri")
	}

	glog.V(2).Infof("Resolved jwks_uri %q for issuer %q", doc.JWKSURI, v.issuer)
	return doc.JWKSURI, nil
}

func (v *Validator) fetchKeySet() (*keySet, error) {
	resp, err := v.client.Get(v.jwksURI)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("GET %s returned status %s", v.jwksURI, resp.Status)
	}

	jwks := &jose.JSONWebKeySet{}
	if err := json.NewDecoder(resp.Body).Decode(jwks); err != nil {
		return nil, errors.Wrap(err, "decoding key set")
	}

	glog.V(2).Infof("Fetched %d keys from %q", len(jwks.Keys), v.jwksURI)
	return &keySet{jwks: jwks, fetchedAt: time.Now()}, nil
}

// refreshLoop re-fetches the key set on a fixed interval and swaps the
// cached pointer on success.  It touches nothing but the atomic slot, so a
// slow or failing fetch can never stall in-flight validations.
func (v *Validator) refreshLoop() {
	ticker := time.NewTicker(v.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-v.closer:
			return
		case <-ticker.C:
			v.refresh()
		}
	}
}

// refresh runs one key set re-fetch.  A failure keeps the previous key set
// in effect: a transient identity-provider outage degrades to serving with
// stale keys, it never surfaces to requests.
func (v *Validator) refresh() {
	ks, err := v.fetchKeySet()
	if err != nil {
		glog.Warningf("Could not refresh JWKS key set, keeping previous keys: %v", err)
		return
	}
	v.keys.Store(ks)
}

// ValidateRequest enforces the Authorization: Bearer scheme on r and
// validates the carried token.
func (v *Validator) ValidateRequest(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return nil, authErrorf(ReasonMissingHeader,
			"Authorization header is missing or not Bearer")
	}
	return v.Validate(strings.TrimPrefix(header, bearerPrefix))
}

// Validate checks token against the cached key set and the configured
// issuer/audience, returning the caller's identity on success and an
// *AuthError otherwise.  It performs no network I/O.
func (v *Validator) Validate(token string) (*Identity, error) {
	// Shape check before touching any key material.
	if strings.Count(token, ".") != 2 {
		return nil, authErrorf(ReasonMalformedToken,
			"token does not have the structure of a JWT")
	}

	claims := jwt.MapClaims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.signingKey); err != nil {
		return nil, toAuthError(err)
	}

	return identityFromClaims(claims), nil
}

// signingKey is the jwt keyfunc: it looks the token's kid up in the cached
// key set.  A miss is reported as is — the next scheduled refresh picks up
// key rotation, requests never wait for it.
func (v *Validator) signingKey(token *jwt.Token) (interface{}, error) {
	ks := v.keys.Load()
	if ks == nil {
		return nil, errNoKeySet
	}

	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, errMissingKeyID
	}

	keys := ks.jwks.Key(kid)
	if len(keys) == 0 {
		return nil, errors.Wrapf(errUnknownKeyID, "kid %q", kid)
	}
	if keys[0].Key == nil {
		return nil, errBadSigningKey
	}
	return keys[0].Key, nil
}

func toAuthError(err error) *AuthError {
	switch {
	case errors.Is(err, errNoKeySet):
		return authErrorf(ReasonJWKSUnreachable, "no verification keys available: %v", err)
	case errors.Is(err, errUnknownKeyID):
		return authErrorf(ReasonUnknownKeyID, "%v", err)
	case errors.Is(err, errMissingKeyID), errors.Is(err, jwt.ErrTokenMalformed):
		return authErrorf(ReasonMalformedToken, "unable to parse token: %v", err)
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return authErrorf(ReasonExpired, "token is expired")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return authErrorf(ReasonIssuerMismatch, "token issuer does not match the configured issuer")
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return authErrorf(ReasonAudienceMismatch, "token audience does not match the configured audience")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authErrorf(ReasonSignatureInvalid, "token signature could not be verified")
	default:
		return authErrorf(ReasonMalformedToken, "unable to validate token: %v", err)
	}
}

func identityFromClaims(claims jwt.MapClaims) *Identity {
	id := &Identity{}

	if email, ok := claims["email"].(string); ok {
		id.Email = email
	} else if sub, ok := claims["sub"].(string); ok {
		id.Email = sub
	}

	if scope, ok := claims["scope"].(string); ok {
		id.Scopes = strings.Fields(scope)
	}
	id.Scopes = append(id.Scopes, "authenticated")

	return id
}

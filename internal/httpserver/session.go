// internal/httpserver/session.go
//
// Session tokens binding an HTTP client to one round.
// A token is an HS256 JWT whose "gid" claim is the round ID; it travels as
// "Authorization: Bearer <token>" or in the session cookie.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/guessnum/internal/config"
)

// ErrNoToken is returned when a request carries neither header nor cookie.
var ErrNoToken = errors.New("no session token")

// Sessions issues and verifies round tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

// NewSessions builds a token issuer from configuration.
func NewSessions(cfg config.Config) *Sessions {
	return &Sessions{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.SessionTTL,
		cookie: cfg.CookieName,
		secure: cfg.Production(),
		now:    time.Now,
	}
}

type sessionClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// Issue signs a token for gameID and returns it with its expiry.
func (s *Sessions) Issue(gameID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return ss, exp, nil
}

// Parse verifies a token and returns its round ID.
func (s *Sessions) Parse(token string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse session: %w", err)
	}
	if claims.GameID == "" {
		return "", errors.New("parse session: missing gid")
	}
	return claims.GameID, nil
}

// FromRequest extracts the raw token from the Authorization header or cookie.
func (s *Sessions) FromRequest(r *http.Request) (string, error) {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:]), nil
	}
	if c, err := r.Cookie(s.cookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrNoToken
}

// SetCookie writes the session cookie.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, s.baseCookie(token, func(c *http.Cookie) { c.Expires = exp }))
}

// ClearCookie deletes the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.baseCookie("", func(c *http.Cookie) { c.MaxAge = -1 }))
}

func (s *Sessions) baseCookie(value string, mod func(*http.Cookie)) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // third-party contexts need None+Secure
	}
	c := &http.Cookie{
		Name:     s.cookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
	}
	mod(c)
	return c
}

// ctxRoundKey is the context key for the authenticated round ID.
type ctxRoundKey struct{}

// requireRound enforces a valid session token and stores its round ID in the context.
func (s *Server) requireRound() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := s.sessions.FromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			id, err := s.sessions.Parse(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxRoundKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// roundID returns the round ID placed by requireRound.
func roundID(ctx context.Context) string {
	id, _ := ctx.Value(ctxRoundKey{}).(string)
	return id
}

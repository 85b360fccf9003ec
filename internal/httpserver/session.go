// internal/httpserver/session.go
//
// Player session identity.
// Responsibilities:
//   - Issue a random session ID (UUID) to every new player.
//   - Carry it in an HS256-signed JWT cookie so IDs cannot be forged or guessed.
//   - Accept the same token as "Authorization: Bearer" for non-browser clients.
//
// Notes:
//   - Invalid, expired or tampered tokens silently start a new session.
//   - Production cookies are Secure + SameSite=None (cross-site frontends);
//     development uses SameSite=Lax over plain HTTP.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sessionClaims is the JWT payload.
type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// sessions issues and verifies session tokens.
type sessions struct {
	secret []byte
	cookie string
	ttl    time.Duration
	secure bool
}

// ensure returns the caller's session ID, minting a new session if needed.
func (s *sessions) ensure(w http.ResponseWriter, r *http.Request) string {
	if tok := s.bearerOrCookie(r); tok != "" {
		if sid, err := s.parse(tok); err == nil {
			return sid
		}
	}
	sid := uuid.NewString()
	tok, exp, err := s.sign(sid, time.Now())
	if err != nil {
		// Still playable for this request; the next one gets a new session.
		log.Warn().Err(err).Msg("sign session token")
		return sid
	}
	s.setCookie(w, tok, exp)
	return sid
}

// sign creates the session token for sid.
func (s *sessions) sign(sid string, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parse verifies tok and returns its session ID.
func (s *sessions) parse(tok string) (string, error) {
	var claims sessionClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid session token")
	}
	if _, err := uuid.Parse(claims.SID); err != nil {
		return "", errors.New("invalid session id")
	}
	return claims.SID, nil
}

// setCookie writes the session cookie with appropriate security attributes.
func (s *sessions) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a session token from the Authorization header or cookie.
func (s *sessions) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cookie); err == nil {
		return c.Value
	}
	return ""
}

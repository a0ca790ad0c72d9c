// internal/httpserver/token.go
//
// Per-game session tokens.
//
// POST /game/new hands out an HS256 JWT whose "gid" claim names the game it
// was issued for. Every /game/{id} route requires that token, either as
// "Authorization: Bearer <token>" or in the ws_game cookie (scoped to the
// game's path), and rejects tokens issued for a different game.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const gameCookieName = "ws_game"

// gameClaims is the token payload.
type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and verifies game tokens.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (t *tokenIssuer) sign(gameID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

var errTokenGame = errors.New("token issued for another game")

// verify checks the signature and expiry of raw and that it belongs to gameID.
func (t *tokenIssuer) verify(raw, gameID string) error {
	claims := &gameClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return err
	}
	if claims.GameID == "" || claims.GameID != gameID {
		return errTokenGame
	}
	return nil
}

// setGameCookie stores the token in a cookie scoped to the game's routes.
func setGameCookie(w http.ResponseWriter, gameID, token string, exp time.Time, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     gameCookieName,
		Value:    token,
		Path:     "/game/" + gameID,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the game cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(gameCookieName); err == nil {
		return c.Value
	}
	return ""
}

type ctxGameIDKey struct{}

// requireGameToken enforces a valid token for the {id} URL parameter and
// stores the game ID in the request context.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := s.tokens.verify(tok, id); err != nil {
			logFor(r).Debug().Err(err).Str("gameId", id).Msg("reject game token")
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// gameIDFrom returns the game ID placed in the context by requireGameToken.
func gameIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxGameIDKey{}).(string)
	return id
}

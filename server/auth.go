// server/auth.go
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Auth guards the admin surface (player registration, recompute, payments,
// audit). One admin account, credentials from the environment, HS256 tokens.
type Auth struct {
	user   string
	hash   []byte
	jwtKey []byte
	issuer string
}

// NewAuth builds the admin authenticator. hash is a bcrypt hash; when empty,
// password is hashed at boot instead (dev convenience). An empty secret gets
// a random per-process key, which invalidates tokens on restart.
func NewAuth(user, password, hash, secret string) *Auth {
	h := []byte(hash)
	if len(h) == 0 {
		h, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	}
	key := []byte(secret)
	if len(key) < 32 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &Auth{user: user, hash: h, jwtKey: key, issuer: "matchpoint"}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (a *Auth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Username != a.user ||
		bcrypt.CompareHashAndPassword(a.hash, []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	claims := jwt.MapClaims{
		"sub": a.user,
		"iss": a.issuer,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(a.jwtKey)
	if err != nil {
		http.Error(w, "token signing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, loginResp{Token: signed, Username: a.user})
}

func (a *Auth) parseToken(tok string) (string, error) {
	if tok == "" {
		return "", errors.New("missing token")
	}
	t, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return a.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	if claims, ok := t.Claims.(jwt.MapClaims); ok {
		if sub, ok := claims["sub"].(string); ok {
			return sub, nil
		}
	}
	return "", errors.New("bad claims")
}

// RequireAuth protects admin REST endpoints.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tok string
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tok = strings.TrimPrefix(h, "Bearer ")
		}
		user, err := a.parseToken(tok)
		if err != nil || user != a.user {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, user)))
	})
}

type actorKey struct{}

// actorFrom names the authenticated admin for audit rows.
func actorFrom(r *http.Request) string {
	if u, ok := r.Context().Value(actorKey{}).(string); ok && u != "" {
		return u
	}
	return "admin"
}

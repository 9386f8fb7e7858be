package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zenakhane/api-creation-workshop/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20

	DefaultTokenTTL   = 24 * time.Hour
	DefaultLoginLimit = 10
	limitWindow       = 60 * time.Second
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Server is the token stub. It shares no state with the catalog.
type Server struct {
	Log        *zap.Logger
	JWT        *TokenMaker
	TTL        time.Duration
	LoginLimit int
}

// RegisterRoutes adds /login and /posts to r.
func (s *Server) RegisterRoutes(r chi.Router) {
	limit := s.LoginLimit
	if limit <= 0 {
		limit = DefaultLoginLimit
	}
	loginLimiter := kit.NewIPRateLimiter(limit, int(limitWindow.Seconds()))

	r.With(loginLimiter.Middleware).Post("/login", s.handleLogin)
	r.With(VerifyToken(s.JWT)).Post("/posts", s.handlePost)
}

type loginReq struct {
	User json.RawMessage `json:"user"`
}

type loginResp struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	var user any
	if len(req.User) > 0 {
		if err := json.Unmarshal(req.User, &user); err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
			return
		}
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	tok, err := s.JWT.New(user, ttl)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("token issue", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{Token: tok})
}

type postResp struct {
	Message  string `json:"message"`
	AuthData Claims `json:"authData"`
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	kit.WriteJSON(w, http.StatusOK, postResp{Message: "Post created...", AuthData: claims})
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// VerifyToken rejects requests without a valid bearer token with 403.
func VerifyToken(jwt *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				kit.WriteError(w, r, http.StatusForbidden, "missing token", nil)
				return
			}

			claims, err := jwt.Parse(strings.TrimPrefix(authz, "Bearer "))
			if err != nil {
				kit.WriteError(w, r, http.StatusForbidden, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

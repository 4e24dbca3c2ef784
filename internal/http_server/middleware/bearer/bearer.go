// Package bearer authenticates requests by verifying the Authorization
// header's JWT against the shared secret. Verification never calls the
// identity service: the token alone carries the proof.
package bearer

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	resp "linkveo/internal/lib/api/response"
	"linkveo/internal/lib/jwt"
	sl "linkveo/internal/lib/logger"

	"github.com/go-chi/render"
)

type ctxKey struct{}

// New returns a middleware that rejects any request without a valid bearer
// token. Every failure mode yields the same 401 body.
func New(log *slog.Logger, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.bearer.New"

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				unauthorized(w, r)

				return
			}

			userID, err := jwt.ParseToken(token, secret)
			if err != nil {
				log.With(slog.String("op", op)).Info("token rejected", sl.Err(err))

				unauthorized(w, r)

				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, resp.Error("could not validate credentials"))
}

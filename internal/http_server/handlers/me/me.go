package me

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"linkveo/internal/http_server/middleware/bearer"
	"linkveo/internal/identity"
	resp "linkveo/internal/lib/api/response"
	sl "linkveo/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func New(
	log *slog.Logger,
	identityService *identity.Identity,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.me.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, ok := bearer.UserID(r.Context())
		if !ok {
			unauthorized(w, r)

			return
		}

		// a valid token whose subject no longer exists is still an
		// authentication failure
		user, err := identityService.UserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				log.Warn("token subject not found", slog.Int64("uid", userID))

				unauthorized(w, r)

				return
			}

			log.Error("failed to load user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		render.JSON(w, r, Response{
			Response:  resp.OK(),
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, resp.Error("could not validate credentials"))
}

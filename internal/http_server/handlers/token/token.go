package token

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"linkveo/internal/identity"
	resp "linkveo/internal/lib/api/response"
	sl "linkveo/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request is read from a form-encoded body (OAuth2 password grant shape);
// the username field carries either an email or a username.
type Request struct {
	Username string `validate:"required"`
	Pass     string `validate:"required"`
}

type Response struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	identityService *identity.Identity,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.token.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := r.ParseForm(); err != nil {
			log.Error("Failed to parse form", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		req := Request{
			Username: r.PostFormValue("username"),
			Pass:     r.PostFormValue("password"),
		}

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		accessToken, err := identityService.Login(ctx, req.Username, req.Pass)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("incorrect username or password"))

				return
			}

			log.Error("failed to login user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("User logged in successfully")

		render.JSON(w, r, Response{
			AccessToken: accessToken,
			TokenType:   "bearer",
		})
	}
}

package save

import (
	"errors"
	"log/slog"
	"net/http"

	"linkveo/internal/http_server/middleware/bearer"
	resp "linkveo/internal/lib/api/response"
	sl "linkveo/internal/lib/logger"
	"linkveo/internal/links"
	"linkveo/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Title    string  `json:"title" validate:"required"`
	URL      string  `json:"url" validate:"required,url"`
	Image    *string `json:"image,omitempty"`
	FolderID *int64  `json:"folder_id,omitempty"`
}

type Response struct {
	resp.Response
	Link models.Link `json:"link"`
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	linkService *links.Links,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.link.save.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ownerID, _ := bearer.UserID(r.Context())

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		log.Info("Request body decoded")

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		link, err := linkService.CreateLink(r.Context(), ownerID, req.Title, req.URL, req.Image, req.FolderID)
		if err != nil {
			if errors.Is(err, links.ErrFolderNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("folder not found"))

				return
			}

			log.Error("failed to create link", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("Link created", slog.Int64("id", link.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: resp.OK(),
			Link:     link,
		})
	}
}

package save

import (
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
	Name string `json:"name" validate:"required"`
}

type Response struct {
	resp.Response
	Folder models.Folder `json:"folder"`
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	linkService *links.Links,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.folder.save.New"

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

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		folder, err := linkService.CreateFolder(r.Context(), ownerID, req.Name)
		if err != nil {
			log.Error("failed to create folder", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("Folder created", slog.Int64("id", folder.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: resp.OK(),
			Folder:   folder,
		})
	}
}

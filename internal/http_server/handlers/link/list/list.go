package list

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
)

type Response struct {
	resp.Response
	Links []models.Link `json:"links"`
}

func New(
	log *slog.Logger,
	linkService *links.Links,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.link.list.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ownerID, _ := bearer.UserID(r.Context())

		list, err := linkService.Links(r.Context(), ownerID)
		if err != nil {
			log.Error("failed to list links", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Links:    list,
		})
	}
}

package remove

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"linkveo/internal/http_server/middleware/bearer"
	resp "linkveo/internal/lib/api/response"
	sl "linkveo/internal/lib/logger"
	"linkveo/internal/links"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
}

func New(
	log *slog.Logger,
	linkService *links.Links,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.link.remove.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ownerID, _ := bearer.UserID(r.Context())

		linkID, err := strconv.ParseInt(chi.URLParam(r, "linkID"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("invalid link id"))

			return
		}

		if err := linkService.DeleteLink(r.Context(), ownerID, linkID); err != nil {
			// a foreign link and a missing link look identical
			if errors.Is(err, links.ErrLinkNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("link not found"))

				return
			}

			log.Error("failed to delete link", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("Link deleted", slog.Int64("id", linkID))

		render.JSON(w, r, Response{Response: resp.OK()})
	}
}

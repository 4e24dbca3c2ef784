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
		const op = "handlers.folder.remove.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ownerID, _ := bearer.UserID(r.Context())

		folderID, err := strconv.ParseInt(chi.URLParam(r, "folderID"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("invalid folder id"))

			return
		}

		if err := linkService.DeleteFolder(r.Context(), ownerID, folderID); err != nil {
			if errors.Is(err, links.ErrFolderNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("folder not found"))

				return
			}

			log.Error("failed to delete folder", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("Folder deleted", slog.Int64("id", folderID))

		render.JSON(w, r, Response{Response: resp.OK()})
	}
}

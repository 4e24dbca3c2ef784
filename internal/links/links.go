package links

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "linkveo/internal/lib/logger"
	"linkveo/internal/models"
	"linkveo/internal/scraper"
	"linkveo/internal/storage"
)

var (
	ErrLinkNotFound   = errors.New("link not found")
	ErrFolderNotFound = errors.New("folder not found")
)

type Links struct {
	log          *slog.Logger
	linkSaver    LinkSaver
	linkProvider LinkProvider
	fetcher      MetadataFetcher
}

type LinkSaver interface {
	SaveLink(ctx context.Context, link models.Link) (models.Link, error)
	DeleteLink(ctx context.Context, ownerID, linkID int64) error
	SaveFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	DeleteFolder(ctx context.Context, ownerID, folderID int64) error
}

type LinkProvider interface {
	LinksByOwner(ctx context.Context, ownerID int64) ([]models.Link, error)
	FoldersByOwner(ctx context.Context, ownerID int64) ([]models.Folder, error)
	FolderByID(ctx context.Context, ownerID, folderID int64) (models.Folder, error)
}

type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (scraper.Metadata, error)
}

func New(
	log *slog.Logger,
	linkSaver LinkSaver,
	linkProvider LinkProvider,
	fetcher MetadataFetcher,
) *Links {
	return &Links{
		log:          log,
		linkSaver:    linkSaver,
		linkProvider: linkProvider,
		fetcher:      fetcher,
	}
}

// CreateLink stores a link for the owner, enriched with scraped metadata when
// the page cooperates. A failed fetch degrades to the client-supplied title
// and image; it never fails the request.
func (l *Links) CreateLink(
	ctx context.Context,
	ownerID int64,
	title string,
	url string,
	image *string,
	folderID *int64,
) (models.Link, error) {
	const op = "links.CreateLink"

	log := l.log.With(slog.String("op", op), slog.Int64("owner_id", ownerID))

	if folderID != nil {
		if _, err := l.linkProvider.FolderByID(ctx, ownerID, *folderID); err != nil {
			if errors.Is(err, storage.ErrFolderNotFound) {
				log.Warn("folder not found", slog.Int64("folder_id", *folderID))

				return models.Link{}, ErrFolderNotFound
			}

			log.Error("failed to check folder", sl.Err(err))

			return models.Link{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	link := models.Link{
		Title:    title,
		URL:      url,
		Image:    image,
		FolderID: folderID,
		OwnerID:  ownerID,
	}

	md, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warn("metadata fetch failed", sl.Err(err))
	} else {
		if md.Title != "" {
			link.Title = md.Title
		}
		if link.Image == nil && md.Image != "" {
			link.Image = &md.Image
		}
	}

	saved, err := l.linkSaver.SaveLink(ctx, link)
	if err != nil {
		log.Error("failed to save link", sl.Err(err))

		return models.Link{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("link created", slog.Int64("link_id", saved.ID))

	return saved, nil
}

func (l *Links) Links(ctx context.Context, ownerID int64) ([]models.Link, error) {
	const op = "links.Links"

	list, err := l.linkProvider.LinksByOwner(ctx, ownerID)
	if err != nil {
		l.log.With(slog.String("op", op)).Error("failed to list links", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// DeleteLink removes an owner's link. A link belonging to someone else is
// indistinguishable from a nonexistent one.
func (l *Links) DeleteLink(ctx context.Context, ownerID, linkID int64) error {
	const op = "links.DeleteLink"

	err := l.linkSaver.DeleteLink(ctx, ownerID, linkID)
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) {
			return ErrLinkNotFound
		}

		l.log.With(slog.String("op", op)).Error("failed to delete link", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (l *Links) CreateFolder(ctx context.Context, ownerID int64, name string) (models.Folder, error) {
	const op = "links.CreateFolder"

	folder, err := l.linkSaver.SaveFolder(ctx, models.Folder{Name: name, OwnerID: ownerID})
	if err != nil {
		l.log.With(slog.String("op", op)).Error("failed to save folder", sl.Err(err))

		return models.Folder{}, fmt.Errorf("%s: %w", op, err)
	}

	return folder, nil
}

func (l *Links) Folders(ctx context.Context, ownerID int64) ([]models.Folder, error) {
	const op = "links.Folders"

	list, err := l.linkProvider.FoldersByOwner(ctx, ownerID)
	if err != nil {
		l.log.With(slog.String("op", op)).Error("failed to list folders", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// DeleteFolder removes a folder and everything filed under it.
func (l *Links) DeleteFolder(ctx context.Context, ownerID, folderID int64) error {
	const op = "links.DeleteFolder"

	err := l.linkSaver.DeleteFolder(ctx, ownerID, folderID)
	if err != nil {
		if errors.Is(err, storage.ErrFolderNotFound) {
			return ErrFolderNotFound
		}

		l.log.With(slog.String("op", op)).Error("failed to delete folder", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

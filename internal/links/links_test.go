package links

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"linkveo/internal/models"
	"linkveo/internal/scraper"
	"linkveo/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinkStore struct {
	links   map[int64]models.Link
	folders map[int64]models.Folder
	nextID  int64
}

func newFakeLinkStore() *fakeLinkStore {
	return &fakeLinkStore{
		links:   map[int64]models.Link{},
		folders: map[int64]models.Folder{},
		nextID:  1,
	}
}

func (s *fakeLinkStore) SaveLink(_ context.Context, link models.Link) (models.Link, error) {
	link.ID = s.nextID
	s.nextID++
	s.links[link.ID] = link
	return link, nil
}

func (s *fakeLinkStore) DeleteLink(_ context.Context, ownerID, linkID int64) error {
	l, ok := s.links[linkID]
	if !ok || l.OwnerID != ownerID {
		return storage.ErrLinkNotFound
	}
	delete(s.links, linkID)
	return nil
}

func (s *fakeLinkStore) SaveFolder(_ context.Context, folder models.Folder) (models.Folder, error) {
	folder.ID = s.nextID
	s.nextID++
	s.folders[folder.ID] = folder
	return folder, nil
}

func (s *fakeLinkStore) DeleteFolder(_ context.Context, ownerID, folderID int64) error {
	f, ok := s.folders[folderID]
	if !ok || f.OwnerID != ownerID {
		return storage.ErrFolderNotFound
	}
	delete(s.folders, folderID)
	for id, l := range s.links {
		if l.FolderID != nil && *l.FolderID == folderID {
			delete(s.links, id)
		}
	}
	return nil
}

func (s *fakeLinkStore) LinksByOwner(_ context.Context, ownerID int64) ([]models.Link, error) {
	list := make([]models.Link, 0)
	for _, l := range s.links {
		if l.OwnerID == ownerID {
			list = append(list, l)
		}
	}
	return list, nil
}

func (s *fakeLinkStore) FoldersByOwner(_ context.Context, ownerID int64) ([]models.Folder, error) {
	list := make([]models.Folder, 0)
	for _, f := range s.folders {
		if f.OwnerID == ownerID {
			list = append(list, f)
		}
	}
	return list, nil
}

func (s *fakeLinkStore) FolderByID(_ context.Context, ownerID, folderID int64) (models.Folder, error) {
	f, ok := s.folders[folderID]
	if !ok || f.OwnerID != ownerID {
		return models.Folder{}, storage.ErrFolderNotFound
	}
	return f, nil
}

type fakeFetcher struct {
	md  scraper.Metadata
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (scraper.Metadata, error) {
	return f.md, f.err
}

func newTestLinks(store *fakeLinkStore, fetcher MetadataFetcher) *Links {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), store, store, fetcher)
}

func TestCreateLinkWithMetadata(t *testing.T) {
	ctx := context.Background()
	store := newFakeLinkStore()
	svc := newTestLinks(store, &fakeFetcher{
		md: scraper.Metadata{Title: "Scraped Title", Image: "https://example.com/og.png"},
	})

	link, err := svc.CreateLink(ctx, 1, "client title", "https://example.com", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Scraped Title", link.Title)
	require.NotNil(t, link.Image)
	assert.Equal(t, "https://example.com/og.png", *link.Image)
}

func TestCreateLinkFetchFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeLinkStore()
	svc := newTestLinks(store, &fakeFetcher{err: errors.New("connection refused")})

	link, err := svc.CreateLink(ctx, 1, "client title", "https://unreachable.invalid", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "client title", link.Title)
	assert.Nil(t, link.Image)
}

func TestCreateLinkClientImageWins(t *testing.T) {
	ctx := context.Background()
	store := newFakeLinkStore()
	svc := newTestLinks(store, &fakeFetcher{
		md: scraper.Metadata{Image: "https://example.com/og.png"},
	})

	clientImage := "https://example.com/mine.png"
	link, err := svc.CreateLink(ctx, 1, "t", "https://example.com", &clientImage, nil)
	require.NoError(t, err)
	require.NotNil(t, link.Image)
	assert.Equal(t, clientImage, *link.Image)
}

func TestCreateLinkForeignFolder(t *testing.T) {
	ctx := context.Background()
	store := newFakeLinkStore()
	svc := newTestLinks(store, &fakeFetcher{})

	folder, err := svc.CreateFolder(ctx, 2, "not yours")
	require.NoError(t, err)

	_, err = svc.CreateLink(ctx, 1, "t", "https://example.com", nil, &folder.ID)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	store := newFakeLinkStore()
	svc := newTestLinks(store, &fakeFetcher{})

	mine, err := svc.CreateLink(ctx, 1, "mine", "https://example.com/a", nil, nil)
	require.NoError(t, err)
	_, err = svc.CreateLink(ctx, 2, "theirs", "https://example.com/b", nil, nil)
	require.NoError(t, err)

	list, err := svc.Links(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	// deleting someone else's link looks like a missing link
	err = svc.DeleteLink(ctx, 2, mine.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	err = svc.DeleteLink(ctx, 1, mine.ID)
	assert.NoError(t, err)
}

func TestDeleteFolderCascades(t *testing.T) {
	ctx := context.Background()
	store := newFakeLinkStore()
	svc := newTestLinks(store, &fakeFetcher{})

	folder, err := svc.CreateFolder(ctx, 1, "reading list")
	require.NoError(t, err)

	_, err = svc.CreateLink(ctx, 1, "filed", "https://example.com/a", nil, &folder.ID)
	require.NoError(t, err)
	loose, err := svc.CreateLink(ctx, 1, "loose", "https://example.com/b", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFolder(ctx, 1, folder.ID))

	list, err := svc.Links(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, loose.ID, list[0].ID)

	folders, err := svc.Folders(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, folders)

	// foreign folder delete is a not-found, not a leak
	err = svc.DeleteFolder(ctx, 2, loose.ID)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

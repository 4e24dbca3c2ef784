package postgres

import (
	"context"
	"errors"
	"fmt"

	"linkveo/internal/config"
	"linkveo/internal/models"
	"linkveo/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LinkRepo struct {
	pool *pgxpool.Pool
}

func NewLinkRepo(ctx context.Context, cfg config.Postgres) (*LinkRepo, error) {
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &LinkRepo{pool: pool}, nil
}

func (r *LinkRepo) SaveLink(ctx context.Context, link models.Link) (models.Link, error) {
	const op = "storage.postgres.SaveLink"

	query := `
		INSERT INTO links (title, url, image, folder_id, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`

	err := r.pool.QueryRow(ctx, query,
		link.Title,
		link.URL,
		link.Image,
		link.FolderID,
		link.OwnerID,
	).Scan(&link.ID)
	if err != nil {
		return models.Link{}, fmt.Errorf("%s: failed to save link: %w", op, err)
	}

	return link, nil
}

func (r *LinkRepo) LinksByOwner(ctx context.Context, ownerID int64) ([]models.Link, error) {
	const op = "storage.postgres.LinksByOwner"

	query := `
		SELECT id, title, url, image, folder_id, owner_id
		FROM links
		WHERE owner_id = $1
		ORDER BY id;
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	links := make([]models.Link, 0)

	for rows.Next() {
		var l models.Link

		err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Image, &l.FolderID, &l.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		links = append(links, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: %w", op, rows.Err())
	}

	return links, nil
}

func (r *LinkRepo) DeleteLink(ctx context.Context, ownerID, linkID int64) error {
	const op = "storage.postgres.DeleteLink"

	query := `DELETE FROM links WHERE id = $1 AND owner_id = $2`

	tag, err := r.pool.Exec(ctx, query, linkID, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrLinkNotFound
	}

	return nil
}

func (r *LinkRepo) SaveFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	const op = "storage.postgres.SaveFolder"

	query := `
		INSERT INTO folders (name, owner_id)
		VALUES ($1, $2)
		RETURNING id;
	`

	err := r.pool.QueryRow(ctx, query, folder.Name, folder.OwnerID).Scan(&folder.ID)
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: failed to save folder: %w", op, err)
	}

	return folder, nil
}

func (r *LinkRepo) FoldersByOwner(ctx context.Context, ownerID int64) ([]models.Folder, error) {
	const op = "storage.postgres.FoldersByOwner"

	query := `
		SELECT id, name, owner_id
		FROM folders
		WHERE owner_id = $1
		ORDER BY id;
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)

	for rows.Next() {
		var f models.Folder

		err := rows.Scan(&f.ID, &f.Name, &f.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		folders = append(folders, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: %w", op, rows.Err())
	}

	return folders, nil
}

func (r *LinkRepo) FolderByID(ctx context.Context, ownerID, folderID int64) (models.Folder, error) {
	query := `
		SELECT id, name, owner_id
		FROM folders
		WHERE id = $1 AND owner_id = $2;
	`

	var f models.Folder

	err := r.pool.QueryRow(ctx, query, folderID, ownerID).Scan(&f.ID, &f.Name, &f.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Folder{}, storage.ErrFolderNotFound
		}

		return models.Folder{}, err
	}

	return f, nil
}

// DeleteFolder removes a folder together with every link inside it. Both
// deletes run in one transaction so an orphaned folder_id can never persist.
func (r *LinkRepo) DeleteFolder(ctx context.Context, ownerID, folderID int64) error {
	const op = "storage.postgres.DeleteFolder"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM links WHERE folder_id = $1 AND owner_id = $2`,
		folderID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM folders WHERE id = $1 AND owner_id = $2`,
		folderID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrFolderNotFound
	}

	return tx.Commit(ctx)
}

func (r *LinkRepo) Close() {
	r.pool.Close()
}

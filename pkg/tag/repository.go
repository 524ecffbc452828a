package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTagNotFound = errors.New("tag not found")

type Repository interface {
	GetTags(ctx context.Context) ([]Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (Tag, error)
	StoreTag(ctx context.Context, tag Tag) (Tag, error)
	UpdateTag(ctx context.Context, tag Tag) (Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTag(row rowScanner) (Tag, error) {
	var tag Tag
	var background, foreground, accent string
	if err := row.Scan(&tag.Id, &tag.Name, &background, &foreground, &accent); err != nil {
		return Tag{}, err
	}
	var err error
	if tag.Style.Background, err = ParseColor(background); err != nil {
		return Tag{}, err
	}
	if tag.Style.Foreground, err = ParseColor(foreground); err != nil {
		return Tag{}, err
	}
	if tag.Style.Accent, err = ParseColor(accent); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (r *repositoryImpl) GetTags(ctx context.Context) ([]Tag, error) {
	query := `SELECT id, name, background, foreground, accent FROM tag ORDER BY name, created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query tags: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	tags := make([]Tag, 0, 10)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *repositoryImpl) GetTag(ctx context.Context, id uuid.UUID) (Tag, error) {
	query := `SELECT id, name, background, foreground, accent FROM tag WHERE id = $1`
	tag, err := scanTag(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tag{}, ErrTagNotFound
		}
		return Tag{}, fmt.Errorf("could not get tag %s: %w", id, err)
	}
	return tag, nil
}

func (r *repositoryImpl) StoreTag(ctx context.Context, tag Tag) (Tag, error) {
	query := `INSERT INTO tag (id, name, background, foreground, accent) VALUES ($1, $2, $3, $4, $5)`
	tag.Id = uuid.New()
	_, err := r.db.Exec(ctx, query, tag.Id, tag.Name, tag.Style.Background.Hex(), tag.Style.Foreground.Hex(), tag.Style.Accent.Hex())
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Tag{}, err
	}
	return tag, nil
}

func (r *repositoryImpl) UpdateTag(ctx context.Context, tag Tag) (Tag, error) {
	query := `UPDATE tag SET name = $1, background = $2, foreground = $3, accent = $4 WHERE id = $5`
	result, err := r.db.Exec(ctx, query, tag.Name, tag.Style.Background.Hex(), tag.Style.Foreground.Hex(), tag.Style.Accent.Hex(), tag.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Tag{}, err
	}
	if result.RowsAffected() == 0 {
		return Tag{}, ErrTagNotFound
	}
	return tag, nil
}

func (r *repositoryImpl) DeleteTag(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM tag WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

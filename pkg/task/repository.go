package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/utils"
)

var ErrTaskNotFound = errors.New("task not found")

type Repository interface {
	GetTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (Task, error)
	StoreTask(ctx context.Context, task Task) (Task, error)
	UpdateTask(ctx context.Context, task Task) (Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

const taskColumns = `id, title, description, start_time, end_time, tag_id`

func scanTask(row pgx.Row) (Task, error) {
	var task Task
	err := row.Scan(&task.Id, &task.Title, &task.Description, &task.StartTime, &task.EndTime, &task.TagId)
	if err != nil {
		return Task{}, err
	}
	task.StartTime = utils.InLocal(task.StartTime)
	task.EndTime = utils.InLocal(task.EndTime)
	return task, nil
}

func (r *repositoryImpl) GetTasks(ctx context.Context) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task ORDER BY start_time, created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	tasks := make([]Task, 0, 32)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *repositoryImpl) GetTask(ctx context.Context, id uuid.UUID) (Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE id = $1`
	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("could not get task %s: %w", id, err)
	}
	return task, nil
}

func (r *repositoryImpl) StoreTask(ctx context.Context, task Task) (Task, error) {
	query := `INSERT INTO task (id, title, description, start_time, end_time, tag_id) VALUES ($1, $2, $3, $4, $5, $6)`
	task.Id = uuid.New()
	_, err := r.db.Exec(ctx, query,
		task.Id,
		task.Title,
		task.Description,
		utils.ToNaiveUTC(task.StartTime),
		utils.ToNaiveUTC(task.EndTime),
		task.TagId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Task{}, err
	}
	return task, nil
}

func (r *repositoryImpl) UpdateTask(ctx context.Context, task Task) (Task, error) {
	query := `UPDATE task SET title = $1, description = $2, start_time = $3, end_time = $4, tag_id = $5 WHERE id = $6`
	result, err := r.db.Exec(ctx, query,
		task.Title,
		task.Description,
		utils.ToNaiveUTC(task.StartTime),
		utils.ToNaiveUTC(task.EndTime),
		task.TagId,
		task.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Task{}, err
	}
	if result.RowsAffected() == 0 {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (r *repositoryImpl) DeleteTask(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM task WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTask = errors.New("invalid task")

type Service interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, id uuid.UUID, task Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

// Validate checks the invariants every stored task must satisfy.
func Validate(task Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if task.StartTime.IsZero() || task.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidTask)
	}
	if !task.StartTime.Before(task.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidTask)
	}
	return nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Task, error) {
	return s.repo.GetTasks(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, task Task) (Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if err := Validate(task); err != nil {
		return Task{}, err
	}
	created, err := s.repo.StoreTask(ctx, task)
	if err != nil {
		return Task{}, fmt.Errorf("failed to store task: %w", err)
	}
	log.Debugf("task created: %s (%s)", created.Title, created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, task Task) (Task, error) {
	task.Id = id
	task.Title = strings.TrimSpace(task.Title)
	if err := Validate(task); err != nil {
		return Task{}, err
	}
	updated, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return Task{}, err
		}
		return Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		log.Warnf("task not deleted, probably because it does not exist (%s)", id)
		return ErrTaskNotFound
	}
	return nil
}

package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/pkg/task"
)

// TaskClient talks to /api/task.
type TaskClient struct {
	client *Client
}

func (c *TaskClient) List(ctx context.Context) ([]task.Task, error) {
	var dtos []task.TaskDTO
	if err := c.client.do(ctx, http.MethodGet, "/api/task", nil, http.StatusOK, &dtos); err != nil {
		return nil, taskError(err)
	}
	tasks := make([]task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := task.DTOToTask(dto)
		if err != nil {
			return nil, fmt.Errorf("invalid task in response: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (c *TaskClient) Create(ctx context.Context, t task.Task) (task.Task, error) {
	var dto task.TaskDTO
	if err := c.client.do(ctx, http.MethodPost, "/api/task", task.TaskToDTO(t), http.StatusCreated, &dto); err != nil {
		return task.Task{}, taskError(err)
	}
	return task.DTOToTask(dto)
}

func (c *TaskClient) Update(ctx context.Context, id uuid.UUID, t task.Task) (task.Task, error) {
	var dto task.TaskDTO
	if err := c.client.do(ctx, http.MethodPut, "/api/task/"+id.String(), task.TaskToDTO(t), http.StatusOK, &dto); err != nil {
		return task.Task{}, taskError(err)
	}
	return task.DTOToTask(dto)
}

func (c *TaskClient) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.do(ctx, http.MethodDelete, "/api/task/"+id.String(), nil, http.StatusNoContent, nil); err != nil {
		return taskError(err)
	}
	return nil
}

func taskError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", task.ErrTaskNotFound, apiErr)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %w", task.ErrInvalidTask, apiErr)
		}
	}
	return err
}

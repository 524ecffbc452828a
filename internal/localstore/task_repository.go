package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/utils"
	"github.com/studyplan/studyplan/pkg/task"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepo stores tasks in the local sqlite database.
func NewTaskRepo(db *gorm.DB) task.Repository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetTasks(ctx context.Context) ([]task.Task, error) {
	var records []taskRecord
	if err := r.db.WithContext(ctx).Order("start_time, created_at").Find(&records).Error; err != nil {
		err := fmt.Errorf("could not query tasks: %w", err)
		log.Error(err)
		return nil, err
	}

	tasks := make([]task.Task, 0, len(records))
	for _, record := range records {
		t, err := record.toTask()
		if err != nil {
			return nil, fmt.Errorf("could not read task %s: %w", record.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *taskRepository) GetTask(ctx context.Context, id uuid.UUID) (task.Task, error) {
	var record taskRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("could not get task %s: %w", id, err)
	}
	return record.toTask()
}

func (r *taskRepository) StoreTask(ctx context.Context, t task.Task) (task.Task, error) {
	t.Id = uuid.New()
	record := toTaskRecord(t)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		err := fmt.Errorf("could not insert task: %w", err)
		log.Error(err)
		return task.Task{}, err
	}
	return record.toTask()
}

func (r *taskRepository) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	record := toTaskRecord(t)
	result := r.db.WithContext(ctx).Model(&taskRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"title":       record.Title,
		"description": record.Description,
		"start_time":  record.StartTime,
		"end_time":    record.EndTime,
		"tag_id":      record.TagID,
	})
	if result.Error != nil {
		err := fmt.Errorf("could not update task: %w", result.Error)
		log.Error(err)
		return task.Task{}, err
	}
	if result.RowsAffected == 0 {
		return task.Task{}, task.ErrTaskNotFound
	}
	t.StartTime = utils.InLocal(record.StartTime)
	t.EndTime = utils.InLocal(record.EndTime)
	return t, nil
}

func (r *taskRepository) DeleteTask(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&taskRecord{})
	if result.Error != nil {
		err := fmt.Errorf("could not delete task: %w", result.Error)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected > 0, nil
}

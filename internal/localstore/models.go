package localstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/internal/utils"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/task"
)

type taskRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	StartTime   time.Time `gorm:"not null;index"`
	EndTime     time.Time `gorm:"not null"`
	TagID       *string   `gorm:"size:36"`
	CreatedAt   time.Time
}

func (taskRecord) TableName() string { return "task" }

type tagRecord struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"not null"`
	Background string `gorm:"size:7;not null"`
	Foreground string `gorm:"size:7;not null"`
	Accent     string `gorm:"size:7;not null"`
	CreatedAt  time.Time
}

func (tagRecord) TableName() string { return "tag" }

func toTaskRecord(t task.Task) taskRecord {
	record := taskRecord{
		ID:          t.Id.String(),
		Title:       t.Title,
		Description: t.Description,
		StartTime:   utils.ToNaiveUTC(t.StartTime),
		EndTime:     utils.ToNaiveUTC(t.EndTime),
	}
	if t.TagId.Valid {
		id := t.TagId.UUID.String()
		record.TagID = &id
	}
	return record
}

func (r taskRecord) toTask() (task.Task, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return task.Task{}, err
	}
	t := task.Task{
		Id:          id,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   utils.InLocal(r.StartTime),
		EndTime:     utils.InLocal(r.EndTime),
	}
	if r.TagID != nil {
		tagId, err := uuid.Parse(*r.TagID)
		if err != nil {
			return task.Task{}, err
		}
		t.TagId = task.TagRef(tagId)
	}
	return t, nil
}

func toTagRecord(t tag.Tag) tagRecord {
	return tagRecord{
		ID:         t.Id.String(),
		Name:       t.Name,
		Background: t.Style.Background.Hex(),
		Foreground: t.Style.Foreground.Hex(),
		Accent:     t.Style.Accent.Hex(),
	}
}

func (r tagRecord) toTag() (tag.Tag, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return tag.Tag{}, err
	}
	t := tag.Tag{Id: id, Name: r.Name}
	if t.Style.Background, err = tag.ParseColor(r.Background); err != nil {
		return tag.Tag{}, err
	}
	if t.Style.Foreground, err = tag.ParseColor(r.Foreground); err != nil {
		return tag.Tag{}, err
	}
	if t.Style.Accent, err = tag.ParseColor(r.Accent); err != nil {
		return tag.Tag{}, err
	}
	return t, nil
}

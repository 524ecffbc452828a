package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/pkg/tag"
	"gorm.io/gorm"
)

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepo stores tags in the local sqlite database.
func NewTagRepo(db *gorm.DB) tag.Repository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetTags(ctx context.Context) ([]tag.Tag, error) {
	var records []tagRecord
	if err := r.db.WithContext(ctx).Order("name, created_at").Find(&records).Error; err != nil {
		err := fmt.Errorf("could not query tags: %w", err)
		log.Error(err)
		return nil, err
	}

	tags := make([]tag.Tag, 0, len(records))
	for _, record := range records {
		t, err := record.toTag()
		if err != nil {
			return nil, fmt.Errorf("could not read tag %s: %w", record.ID, err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (r *tagRepository) GetTag(ctx context.Context, id uuid.UUID) (tag.Tag, error) {
	var record tagRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tag.Tag{}, tag.ErrTagNotFound
		}
		return tag.Tag{}, fmt.Errorf("could not get tag %s: %w", id, err)
	}
	return record.toTag()
}

func (r *tagRepository) StoreTag(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	t.Id = uuid.New()
	record := toTagRecord(t)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		err := fmt.Errorf("could not insert tag: %w", err)
		log.Error(err)
		return tag.Tag{}, err
	}
	return t, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	record := toTagRecord(t)
	result := r.db.WithContext(ctx).Model(&tagRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":       record.Name,
		"background": record.Background,
		"foreground": record.Foreground,
		"accent":     record.Accent,
	})
	if result.Error != nil {
		err := fmt.Errorf("could not update tag: %w", result.Error)
		log.Error(err)
		return tag.Tag{}, err
	}
	if result.RowsAffected == 0 {
		return tag.Tag{}, tag.ErrTagNotFound
	}
	return t, nil
}

// DeleteTag leaves tasks that reference the tag untouched.
func (r *tagRepository) DeleteTag(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&tagRecord{})
	if result.Error != nil {
		err := fmt.Errorf("could not delete tag: %w", result.Error)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected > 0, nil
}

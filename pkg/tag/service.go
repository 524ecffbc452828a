package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTag = errors.New("invalid tag")

type Service interface {
	List(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, name string, style Style) (Tag, error)
	Update(ctx context.Context, id uuid.UUID, name string, style Style) (Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Tag, error) {
	return s.repo.GetTags(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, name string, style Style) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, fmt.Errorf("%w: name is required", ErrInvalidTag)
	}
	created, err := s.repo.StoreTag(ctx, Tag{Name: name, Style: style})
	if err != nil {
		return Tag{}, fmt.Errorf("failed to store tag: %w", err)
	}
	log.Debugf("tag created: %s (%s)", created.Name, created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, name string, style Style) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, fmt.Errorf("%w: name is required", ErrInvalidTag)
	}
	updated, err := s.repo.UpdateTag(ctx, Tag{Id: id, Name: name, Style: style})
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			return Tag{}, err
		}
		return Tag{}, fmt.Errorf("failed to update tag: %w", err)
	}
	return updated, nil
}

// Delete removes the tag only. Tasks pointing at it keep the dangling reference.
func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteTag(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if !deleted {
		log.Warnf("tag not deleted, probably because it does not exist (%s)", id)
		return ErrTagNotFound
	}
	return nil
}

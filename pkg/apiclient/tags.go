package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/pkg/tag"
)

// TagClient talks to /api/tag.
type TagClient struct {
	client *Client
}

func (c *TagClient) List(ctx context.Context) ([]tag.Tag, error) {
	var dtos []tag.TagDTO
	if err := c.client.do(ctx, http.MethodGet, "/api/tag", nil, http.StatusOK, &dtos); err != nil {
		return nil, tagError(err)
	}
	tags := make([]tag.Tag, 0, len(dtos))
	for _, dto := range dtos {
		t, err := tag.DTOToTag(dto)
		if err != nil {
			return nil, fmt.Errorf("invalid tag in response: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (c *TagClient) Create(ctx context.Context, name string, style tag.Style) (tag.Tag, error) {
	var dto tag.TagDTO
	if err := c.client.do(ctx, http.MethodPost, "/api/tag", tag.StyleToDTO(name, style), http.StatusCreated, &dto); err != nil {
		return tag.Tag{}, tagError(err)
	}
	return tag.DTOToTag(dto)
}

func (c *TagClient) Update(ctx context.Context, id uuid.UUID, name string, style tag.Style) (tag.Tag, error) {
	var dto tag.TagDTO
	if err := c.client.do(ctx, http.MethodPut, "/api/tag/"+id.String(), tag.StyleToDTO(name, style), http.StatusOK, &dto); err != nil {
		return tag.Tag{}, tagError(err)
	}
	return tag.DTOToTag(dto)
}

func (c *TagClient) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.do(ctx, http.MethodDelete, "/api/tag/"+id.String(), nil, http.StatusNoContent, nil); err != nil {
		return tagError(err)
	}
	return nil
}

func tagError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", tag.ErrTagNotFound, apiErr)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %w", tag.ErrInvalidTag, apiErr)
		}
	}
	return err
}

package tag

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/rest"
)

type TagDTO struct {
	Id         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Foreground string `json:"foreground,omitempty"`
	Accent     string `json:"accent,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListTags godoc
// @Summary List all tags
// @Tags Tag
// @Produce json
// @Success 200 {array} TagDTO
// @Router /api/tag [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing tags")
	tags, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]TagDTO, 0, len(tags))
	for _, tag := range tags {
		dtos = append(dtos, TagToDTO(tag))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Style colors are derived from `color` when background/foreground are omitted
// @Tags Tag
// @Accept json
// @Produce json
// @Param tag body TagDTO true "Tag"
// @Success 201 {object} TagDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/tag [post]
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var dto TagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	style, err := DTOToStyle(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid tag color", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), dto.Name, style)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TagToDTO(created))
}

// UpdateTag godoc
// @Summary Replace a tag's name and style
// @Tags Tag
// @Accept json
// @Produce json
// @Param tagId path string true "Tag ID"
// @Param tag body TagDTO true "Tag"
// @Success 200 {object} TagDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/tag/{tagId} [put]
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["tagId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid tag id", err.Error())
		return
	}
	var dto TagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	style, err := DTOToStyle(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid tag color", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), id, dto.Name, style)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TagToDTO(updated))
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Tasks referencing the tag are left untouched
// @Tags Tag
// @Param tagId path string true "Tag ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/tag/{tagId} [delete]
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["tagId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid tag id", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTag):
		rest.WriteError(w, http.StatusBadRequest, "Invalid tag", err.Error())
	case errors.Is(err, ErrTagNotFound):
		rest.WriteError(w, http.StatusNotFound, "Tag not found", err.Error())
	default:
		log.Errorf("tag request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func TagToDTO(tag Tag) TagDTO {
	return TagDTO{
		Id:         tag.Id.String(),
		Name:       tag.Name,
		Color:      tag.Color().Hex(),
		Background: tag.Style.Background.Hex(),
		Foreground: tag.Style.Foreground.Hex(),
		Accent:     tag.Style.Accent.Hex(),
	}
}

// DTOToTag parses a full tag payload, as returned by the API.
func DTOToTag(dto TagDTO) (Tag, error) {
	id, err := uuid.Parse(dto.Id)
	if err != nil {
		return Tag{}, err
	}
	style, err := DTOToStyle(dto)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Id: id, Name: dto.Name, Style: style}, nil
}

// DTOToStyle reads an explicit style when all three colors are present and otherwise derives one
// from the single chosen color.
func DTOToStyle(dto TagDTO) (Style, error) {
	if dto.Background != "" && dto.Foreground != "" && dto.Accent != "" {
		background, err := ParseColor(dto.Background)
		if err != nil {
			return Style{}, err
		}
		foreground, err := ParseColor(dto.Foreground)
		if err != nil {
			return Style{}, err
		}
		accent, err := ParseColor(dto.Accent)
		if err != nil {
			return Style{}, err
		}
		return Style{Background: background, Foreground: foreground, Accent: accent}, nil
	}
	chosen := dto.Color
	if chosen == "" {
		chosen = dto.Accent
	}
	c, err := ParseColor(chosen)
	if err != nil {
		return Style{}, err
	}
	return DeriveStyle(c), nil
}

// StyleToDTO fills the style fields of a request payload.
func StyleToDTO(name string, style Style) TagDTO {
	return TagDTO{
		Name:       name,
		Color:      style.Accent.Hex(),
		Background: style.Background.Hex(),
		Foreground: style.Foreground.Hex(),
		Accent:     style.Accent.Hex(),
	}
}

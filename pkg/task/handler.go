package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/studyplan/studyplan/internal/rest"
	"github.com/studyplan/studyplan/internal/utils"
)

// TaskDTO carries times as naive ISO-8601 strings (2006-01-02T15:04:05) and a nullable tag id.
type TaskDTO struct {
	Id          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	TagId       *string `json:"tagId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListTasks godoc
// @Summary List all tasks
// @Tags Task
// @Produce json
// @Success 200 {array} TaskDTO
// @Router /api/task [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing tasks")
	tasks, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, TaskToDTO(task))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// CreateTask godoc
// @Summary Create a task
// @Tags Task
// @Accept json
// @Produce json
// @Param task body TaskDTO true "Task"
// @Success 201 {object} TaskDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/task [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var dto TaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	task, err := DTOToTask(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid task payload", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), task)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TaskToDTO(created))
}

// UpdateTask godoc
// @Summary Replace a task
// @Tags Task
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param task body TaskDTO true "Task"
// @Success 200 {object} TaskDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/task/{taskId} [put]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["taskId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid task id", err.Error())
		return
	}
	var dto TaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	dto.Id = ""
	task, err := DTOToTask(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid task payload", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), id, task)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TaskToDTO(updated))
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags Task
// @Param taskId path string true "Task ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/task/{taskId} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["taskId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid task id", err.Error())
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
	case errors.Is(err, ErrInvalidTask):
		rest.WriteError(w, http.StatusBadRequest, "Invalid task", err.Error())
	case errors.Is(err, ErrTaskNotFound):
		rest.WriteError(w, http.StatusNotFound, "Task not found", err.Error())
	default:
		log.Errorf("task request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func TaskToDTO(task Task) TaskDTO {
	dto := TaskDTO{
		Title:       task.Title,
		Description: task.Description,
		StartTime:   utils.FormatISO(task.StartTime),
		EndTime:     utils.FormatISO(task.EndTime),
	}
	if task.Id != uuid.Nil {
		dto.Id = task.Id.String()
	}
	if task.TagId.Valid {
		tagId := task.TagId.UUID.String()
		dto.TagId = &tagId
	}
	return dto
}

// DTOToTask parses a task payload. An empty id yields a draft with uuid.Nil.
func DTOToTask(dto TaskDTO) (Task, error) {
	task := Task{
		Title:       dto.Title,
		Description: dto.Description,
	}
	var err error
	if dto.Id != "" {
		if task.Id, err = uuid.Parse(dto.Id); err != nil {
			return Task{}, err
		}
	}
	if task.StartTime, err = utils.ParseISO(dto.StartTime); err != nil {
		return Task{}, err
	}
	if task.EndTime, err = utils.ParseISO(dto.EndTime); err != nil {
		return Task{}, err
	}
	if dto.TagId != nil && *dto.TagId != "" {
		tagId, err := uuid.Parse(*dto.TagId)
		if err != nil {
			return Task{}, err
		}
		task.TagId = TagRef(tagId)
	}
	return task, nil
}

package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/task"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	TagRepo    tag.Repository
	TagService tag.Service
	TagHandler *tag.Handler

	TaskRepo    task.Repository
	TaskService task.Service
	TaskHandler *task.Handler
}

// BuildDependencies wires the Postgres repositories into services and handlers.
func BuildDependencies(db *pgxpool.Pool) *Dependencies {
	return NewDependencies(tag.NewRepo(db), task.NewRepo(db))
}

// NewDependencies wires services and handlers on top of the given repositories.
func NewDependencies(tagRepo tag.Repository, taskRepo task.Repository) *Dependencies {
	deps := &Dependencies{}

	deps.TagRepo = tagRepo
	deps.TagService = tag.NewService(deps.TagRepo)
	deps.TagHandler = tag.NewHandler(deps.TagService)

	deps.TaskRepo = taskRepo
	deps.TaskService = task.NewService(deps.TaskRepo)
	deps.TaskHandler = task.NewHandler(deps.TaskService)

	return deps
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/studyplan/studyplan/internal/config"
	"github.com/studyplan/studyplan/internal/event_bus"
	"github.com/studyplan/studyplan/internal/localstore"
	"github.com/studyplan/studyplan/internal/tui"
	"github.com/studyplan/studyplan/internal/utils"
	"github.com/studyplan/studyplan/pkg/apiclient"
	"github.com/studyplan/studyplan/pkg/schedule"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/tagmanager"
	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
	"github.com/studyplan/studyplan/pkg/view"
)

var (
	useLocal     bool
	initialView  string
	calendarLogs string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Open the interactive calendar",
	Long: `Open the interactive calendar in the terminal.
Tasks and tags are read from the studyplan service, or from a local SQLite file with --local.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		kind, err := view.ParseKind(initialView)
		if err != nil {
			return err
		}

		closeLog, err := redirectLogs(calendarLogs)
		if err != nil {
			return err
		}
		defer closeLog()

		tasks, tags, closeStores, err := openStores(cfg, useLocal)
		if err != nil {
			return err
		}
		defer closeStores()

		return runCalendar(cmd.Context(), cfg.Calendar, kind, tasks, tags)
	},
}

// openStores picks the HTTP stores of a running service, or the local SQLite stores.
func openStores(cfg config.Application, local bool) (schedule.TaskStore, tagmanager.Store, func(), error) {
	if !local {
		client := apiclient.New(cfg.Client.BaseUrl, cfg.Client.Timeout)
		log.Infof("Using studyplan service at %s", cfg.Client.BaseUrl)
		return client.Tasks(), client.Tags(), func() {}, nil
	}

	db, err := localstore.Open(cfg.Local.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Infof("Using local database %s", cfg.Local.Path)
	closeDb := func() {
		if err := localstore.Close(db); err != nil {
			log.Warnf("failed to close local database: %v", err)
		}
	}
	return task.NewService(localstore.NewTaskRepo(db)), tag.NewService(localstore.NewTagRepo(db)), closeDb, nil
}

func runCalendar(ctx context.Context, cfg config.Calendar, kind view.Kind, tasks schedule.TaskStore, tags tagmanager.Store) error {
	bus := event_bus.NewEventBus()
	manager := tagmanager.New(tags, bus)
	layout := timegrid.Layout{
		HourHeight: cfg.HourHeight,
		DayWidth:   cfg.DayWidth,
		StartHour:  cfg.StartHour,
		EndHour:    cfg.EndHour,
	}
	ctrl := schedule.New(schedule.Options{
		Tasks:  tasks,
		Tags:   manager,
		Bus:    bus,
		Clock:  utils.SystemClock{},
		Layout: layout,
		Month:  tui.MonthGeometry(cfg.DayWidth),
		View:   kind,
	})
	defer ctrl.Close()

	return tui.Run(ctx, tui.New(ctx, ctrl, manager, bus))
}

// redirectLogs keeps log lines off the terminal while the calendar owns it.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

func init() {
	calendarCmd.Flags().BoolVar(&useLocal, "local", false, "use a local SQLite file instead of the studyplan service")
	calendarCmd.Flags().StringVar(&initialView, "view", "week", "initial view: day, week or month")
	calendarCmd.Flags().StringVar(&calendarLogs, "log-file", "", "write logs to this file while the calendar is open")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "STUDYPLAN_"

var ErrInvalidCalendar = errors.New("invalid calendar geometry")

type Application struct {
	Host     string   `koanf:"host"`
	Database Database `koanf:"db"`
	Calendar Calendar `koanf:"calendar"`
	Client   Client   `koanf:"client"`
	Local    Local    `koanf:"local"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Calendar holds the time grid geometry of the terminal calendar, in rows and columns.
type Calendar struct {
	HourHeight float64 `koanf:"hourheight"`
	DayWidth   float64 `koanf:"daywidth"`
	StartHour  int     `koanf:"starthour"`
	EndHour    int     `koanf:"endhour"`
}

// Validate rejects geometry the time grid cannot map offsets through.
func (c Calendar) Validate() error {
	switch {
	case c.HourHeight <= 0:
		return fmt.Errorf("%w: hourheight must be positive, got %v", ErrInvalidCalendar, c.HourHeight)
	case c.DayWidth <= 0:
		return fmt.Errorf("%w: daywidth must be positive, got %v", ErrInvalidCalendar, c.DayWidth)
	case c.StartHour < 0 || c.EndHour > 24:
		return fmt.Errorf("%w: hours must lie within 0-24, got %d-%d", ErrInvalidCalendar, c.StartHour, c.EndHour)
	case c.StartHour >= c.EndHour:
		return fmt.Errorf("%w: starthour %d must be before endhour %d", ErrInvalidCalendar, c.StartHour, c.EndHour)
	}
	return nil
}

// Client configures the HTTP stores used by the calendar when talking to a server.
type Client struct {
	BaseUrl string        `koanf:"baseurl"`
	Timeout time.Duration `koanf:"timeout"`
}

// Local configures the offline SQLite stores.
type Local struct {
	Path string `koanf:"path"`
}

func Defaults() Application {
	return Application{
		Host: ":8181",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "studyplan",
			Pass:   "",
			Name:   "studyplan",
			Schema: "studyplan",
		},
		Calendar: Calendar{
			HourHeight: 2,
			DayWidth:   18,
			StartHour:  6,
			EndHour:    24,
		},
		Client: Client{
			BaseUrl: "http://localhost:8181",
			Timeout: 10 * time.Second,
		},
		Local: Local{
			Path: "studyplan.db",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.Calendar.Validate(); err != nil {
		log.Errorf("error validating config: %v", err)
		return Application{}, err
	}

	return app, nil
}

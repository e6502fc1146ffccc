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

const envPrefix = "CLARITY_"

const (
	MemoryBackend   = "memory"
	PostgresBackend = "postgres"
)

type Application struct {
	Host     string   `koanf:"host"`
	Addr     string   `koanf:"addr"`
	Store    Store    `koanf:"store"`
	Database Database `koanf:"db"`
}

type Store struct {
	// Backend is either "memory" or "postgres".
	Backend string `koanf:"backend"`
	// Latency is waited before every in-memory store operation.
	Latency time.Duration `koanf:"latency"`
	// Fixtures is a directory with categories.json and expenses.json. Empty means bundled data.
	Fixtures string `koanf:"fixtures"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:5173",
		Addr: ":8181",
		Store: Store{
			Backend: MemoryBackend,
			Latency: 200 * time.Millisecond,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "clarity",
			Pass:   "",
			Name:   "clarity",
			Schema: "public",
		},
	}
}

// Load layers the defaults, the YAML file at path (when present) and CLARITY_* environment
// variables, in that order.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
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
	app.Store.Backend = strings.ToLower(strings.TrimSpace(app.Store.Backend))

	if err := app.Validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Validate reports every problem in one error.
func (a Application) Validate() error {
	var problems []error
	if strings.TrimSpace(a.Addr) == "" {
		problems = append(problems, errors.New("addr must not be empty"))
	}
	switch a.Store.Backend {
	case MemoryBackend:
	case PostgresBackend:
		if a.Database.Host == "" {
			problems = append(problems, errors.New("db.host is required for the postgres backend"))
		}
		if a.Database.Port <= 0 || a.Database.Port > 65535 {
			problems = append(problems, fmt.Errorf("db.port %d is out of range", a.Database.Port))
		}
		if a.Database.Name == "" {
			problems = append(problems, errors.New("db.name is required for the postgres backend"))
		}
	default:
		problems = append(problems, fmt.Errorf("store.backend %q is not one of %s, %s", a.Store.Backend, MemoryBackend, PostgresBackend))
	}
	if a.Store.Latency < 0 {
		problems = append(problems, errors.New("store.latency must not be negative"))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}
	return nil
}

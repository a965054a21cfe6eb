package gen

import (
	"errors"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// A Target selects which kind of files the generator produces.
type Target uint

const (
	// Migrations produces a migration per table entity.
	Migrations Target = 1 << iota

	// Models produces a model per class entity.
	Models

	// AllTargets produces both.
	AllTargets = Migrations | Models
)

// Has reports whether t includes target.
func (t Target) Has(target Target) bool { return t&target != 0 }

// ParseTarget parses "migrations", "models" or "all".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return AllTargets, nil
	case "migrations", "migration":
		return Migrations, nil
	case "models", "model":
		return Models, nil
	default:
		return 0, NewConfigError("Target", s, "unsupported target; use migrations, models or all")
	}
}

// Default locations of generated files inside a Laravel project.
const (
	DefaultMigrationsDir = "database/migrations"
	DefaultModelsDir     = "app/Models"
	DefaultSuffix        = "Table"
	DefaultOnDelete      = "cascade"
)

// Config holds the generation settings shared by the translators, the
// generator and the file writer.
type Config struct {
	// Clock stamps migration file names.
	Clock func() time.Time
	// Indent is the indentation unit of the emitted source.
	Indent string
	// Suffix ends migration class names, as in CreateUsersTable.
	Suffix string
	// Targets selects the generated kinds.
	Targets Target
	// Relations enables relation accessor methods on models.
	Relations bool
	// Terminate ends schema-builder lines with a semicolon.
	Terminate bool
	// Workers bounds parallel translation and writing.
	Workers int
	// Logger receives diagnostics of the generator.
	Logger logrus.FieldLogger
	// MigrationsDir and ModelsDir are relative to the project root.
	MigrationsDir string
	ModelsDir     string
}

// NewConfig returns a Config with defaults, then applies opts.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Clock:         time.Now,
		Indent:        "\t",
		Suffix:        DefaultSuffix,
		Targets:       AllTargets,
		Workers:       runtime.GOMAXPROCS(0),
		Logger:        discard(),
		MigrationsDir: DefaultMigrationsDir,
		ModelsDir:     DefaultModelsDir,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Option configures code generation.
type Option func(*Config) error

// WithClock sets the time source of migration file names.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) error {
		if clock == nil {
			return NewConfigError("Clock", nil, "clock cannot be nil")
		}
		c.Clock = clock
		return nil
	}
}

// WithIndent sets the indentation unit, a tab by default.
func WithIndent(unit string) Option {
	return func(c *Config) error {
		if strings.Trim(unit, " \t") != "" {
			return NewConfigError("Indent", unit, "indent must be spaces or tabs")
		}
		if unit == "" {
			unit = "\t"
		}
		c.Indent = unit
		return nil
	}
}

// WithSuffix sets the migration class name suffix.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		c.Suffix = suffix
		return nil
	}
}

// WithTargets selects the generated kinds.
func WithTargets(t Target) Option {
	return func(c *Config) error {
		if t&AllTargets == 0 {
			return NewConfigError("Targets", t, "no target selected")
		}
		c.Targets = t
		return nil
	}
}

// WithRelations enables relation accessor methods on models.
func WithRelations() Option {
	return func(c *Config) error {
		c.Relations = true
		return nil
	}
}

// WithStatementTerminator ends schema-builder lines with a semicolon.
func WithStatementTerminator() Option {
	return func(c *Config) error {
		c.Terminate = true
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger receiving generator diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithMigrationsDir sets the migrations folder relative to the project root.
func WithMigrationsDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("MigrationsDir", nil, "directory cannot be empty")
		}
		c.MigrationsDir = dir
		return nil
	}
}

// WithModelsDir sets the models folder relative to the project root.
func WithModelsDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("ModelsDir", nil, "directory cannot be empty")
		}
		c.ModelsDir = dir
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

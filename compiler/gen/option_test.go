package gen

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "\t", c.Indent)
	assert.Equal(t, DefaultSuffix, c.Suffix)
	assert.Equal(t, AllTargets, c.Targets)
	assert.False(t, c.Relations)
	assert.False(t, c.Terminate)
	assert.Positive(t, c.Workers)
	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.Clock)
	assert.Equal(t, DefaultMigrationsDir, c.MigrationsDir)
	assert.Equal(t, DefaultModelsDir, c.ModelsDir)
}

func TestWithIndent(t *testing.T) {
	tests := []struct {
		name    string
		unit    string
		want    string
		wantErr bool
	}{
		{"spaces", "    ", "    ", false},
		{"tab", "\t", "\t", false},
		{"empty means tab", "", "\t", false},
		{"letters", "ab", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithIndent(tt.unit)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Indent)
		})
	}
}

func TestWithTargets(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTargets(Models)(c))
	assert.True(t, c.Targets.Has(Models))
	assert.False(t, c.Targets.Has(Migrations))

	err := WithTargets(0)(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingConfig))
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"", AllTargets, false},
		{"all", AllTargets, false},
		{"Migrations", Migrations, false},
		{"model", Models, false},
		{"seeders", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil clock", WithClock(nil)},
		{"zero workers", WithWorkers(0)},
		{"nil logger", WithLogger(nil)},
		{"empty migrations dir", WithMigrationsDir("")},
		{"empty models dir", WithModelsDir("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opt)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestOptions(t *testing.T) {
	at := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c, err := NewConfig(
		WithClock(func() time.Time { return at }),
		WithSuffix(""),
		WithRelations(),
		WithStatementTerminator(),
		WithWorkers(3),
		WithLogger(logger),
		WithMigrationsDir("db/migrations"),
		WithModelsDir("app"),
	)
	require.NoError(t, err)
	assert.Equal(t, at, c.Clock())
	assert.Empty(t, c.Suffix)
	assert.True(t, c.Relations)
	assert.True(t, c.Terminate)
	assert.Equal(t, 3, c.Workers)
	assert.Same(t, logger, c.Logger)
	assert.Equal(t, "db/migrations", c.MigrationsDir)
	assert.Equal(t, "app", c.ModelsDir)
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithWorkers(-1), WithSuffix("Migration"), WithModelsDir(""))
	require.Error(t, err)
	assert.Equal(t, "Migration", c.Suffix)
	assert.Contains(t, err.Error(), "Workers")
	assert.Contains(t, err.Error(), "ModelsDir")

	t.Run("Apply stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithWorkers(-1), WithSuffix("Migration"))
		require.Error(t, err)
		assert.Empty(t, c.Suffix)
	})
}

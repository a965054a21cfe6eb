// Package cli implements the laragen command line.
package cli

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Environment variables providing flag defaults.
const (
	EnvLogLevel = "LARAGEN_LOG_LEVEL"
	EnvOut      = "LARAGEN_OUT"
	EnvDriver   = "LARAGEN_DRIVER"
	EnvDSN      = "LARAGEN_DSN"
	EnvSchema   = "LARAGEN_SCHEMA"
)

// app is the state shared by the commands of one invocation.
type app struct {
	logLevel string
	envFile  string

	logger *logrus.Logger
}

// RootCmd returns the laragen command tree.
func RootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "laragen",
		Short: "Generate Laravel migrations and models from entity descriptions",
		Long: `laragen turns table and class descriptions into Laravel code:
a schema migration per table and an Eloquent model per class.

Descriptions are JSON or YAML documents, or are read from a live
MySQL or PostgreSQL database with "laragen inspect".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&a.envFile, "env-file", "e", ".env", "Path to .env file")

	root.AddCommand(GenerateCmd(a))
	root.AddCommand(InspectCmd(a))
	root.AddCommand(WatchCmd(a))
	return root
}

// setup loads the env file, then configures logging and fills unset flags
// from the environment.
func (a *app) setup(cmd *cobra.Command) error {
	envErr := loadEnv(a.envFile)
	if !cmd.Flags().Changed("log-level") {
		a.logLevel = os.Getenv(EnvLogLevel)
	}
	a.logger = SetupLogging(a.logLevel, cmd.ErrOrStderr())
	if envErr != nil {
		a.logger.Warnf("Error loading %s file: %v", a.envFile, envErr)
	}
	return nil
}

// loadEnv loads envFile into the environment if it exists. Variables already
// set win over the file.
func loadEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}
	return godotenv.Load(envFile)
}

// SetupLogging returns a logger writing to w at the given level; an empty
// or unknown level means info.
func SetupLogging(level string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(w)
	return logger
}

// envDefaults sets every flag the user left unset to the value of its
// environment variable, when that is set.
func envDefaults(flags *pflag.FlagSet, vars map[string]string) error {
	for flag, key := range vars {
		v, ok := os.LookupEnv(key)
		if !ok || flags.Changed(flag) {
			continue
		}
		if err := flags.Set(flag, v); err != nil {
			return err
		}
	}
	return nil
}

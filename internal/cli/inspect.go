package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	// Drivers of the inspectable databases.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/syssam/laragen/compiler/load"
)

type inspectOptions struct {
	driver string
	dsn    string
	schema string
	output string
}

// InspectCmd returns the inspect command.
func InspectCmd(a *app) *cobra.Command {
	opts := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe the tables of a live database",
		Long: `Inspect reads the tables of a MySQL or PostgreSQL database from
information_schema and writes them as a description document that
"laragen generate" accepts.`,
		Example: `  laragen inspect --driver mysql --dsn 'user:pass@tcp(localhost:3306)/shop' -o schema.yaml
  laragen inspect --driver postgres --dsn 'postgres://localhost/shop?sslmode=disable' --schema public`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := envDefaults(cmd.Flags(), map[string]string{
				"driver": EnvDriver,
				"dsn":    EnvDSN,
				"schema": EnvSchema,
			})
			if err != nil {
				return err
			}
			if opts.dsn == "" {
				return fmt.Errorf("missing --dsn or %s", EnvDSN)
			}
			db, err := sql.Open(opts.driver, opts.dsn)
			if err != nil {
				return fmt.Errorf("open %s database: %w", opts.driver, err)
			}
			defer db.Close()
			return runInspect(cmd.Context(), a, db, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.driver, "driver", load.MySQL, "Database driver (mysql, postgres)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Data source name")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Schema to inspect (default: current database, or public)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, .yaml or .json (default: YAML to stdout)")
	return cmd
}

// runInspect inspects db and writes the description to the output file, or
// to stdout when none is set.
func runInspect(ctx context.Context, a *app, db *sql.DB, opts *inspectOptions, stdout io.Writer) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to %s database: %w", opts.driver, err)
	}
	entities, err := load.Inspect(ctx, db, opts.driver, opts.schema)
	if err != nil {
		return err
	}
	a.logger.WithField("tables", len(entities)).Info("inspected database")

	if opts.output == "" {
		return load.Encode(stdout, load.YAML, entities)
	}
	format, err := load.FormatOf(opts.output)
	if err != nil {
		return err
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := load.Encode(f, format, entities); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  %s %s (%d tables)\n", color.New(color.FgGreen).Sprint("write"), opts.output, len(entities))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/syssam/laragen/compiler/gen"
	"github.com/syssam/laragen/compiler/load"
)

type generateOptions struct {
	out       string
	only      string
	suffix    string
	relations bool
	terminate bool
}

// GenerateCmd returns the generate command.
func GenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <files...>",
		Short: "Generate migrations and models from description files",
		Example: `  # Generate into the current Laravel project
  laragen generate schema.yaml

  # Models only, with relation accessors
  laragen generate --only models --relations schema.yaml

  # Into another project
  laragen generate --out ../shop schema/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := envDefaults(cmd.Flags(), map[string]string{"out": EnvOut}); err != nil {
				return err
			}
			_, err := runGenerate(cmd.Context(), a, opts, args, cmd.OutOrStdout())
			return err
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

// bind registers the generation flags shared by generate and watch.
func (o *generateOptions) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&o.out, "out", "o", ".", "Laravel project root")
	flags.StringVar(&o.only, "only", "all", "Generate only migrations or models")
	flags.StringVar(&o.suffix, "suffix", gen.DefaultSuffix, "Migration class name suffix")
	flags.BoolVar(&o.relations, "relations", false, "Add relation accessors to models")
	flags.BoolVar(&o.terminate, "terminate", false, "End schema builder lines with a semicolon")
}

// options returns the generator options of the flags.
func (o *generateOptions) options(a *app) ([]gen.Option, error) {
	targets, err := gen.ParseTarget(o.only)
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{
		gen.WithLogger(a.logger),
		gen.WithTargets(targets),
		gen.WithSuffix(o.suffix),
	}
	if o.relations {
		opts = append(opts, gen.WithRelations())
	}
	if o.terminate {
		opts = append(opts, gen.WithStatementTerminator())
	}
	return opts, nil
}

// runGenerate loads the files, generates and writes the units, and reports
// each written file to out.
func runGenerate(ctx context.Context, a *app, opts *generateOptions, files []string, out io.Writer) (*gen.Result, error) {
	genOpts, err := opts.options(a)
	if err != nil {
		return nil, err
	}
	entities, err := load.Files(files...)
	if err != nil {
		return nil, err
	}
	g, err := gen.New(genOpts...)
	if err != nil {
		return nil, err
	}
	res, err := g.Generate(ctx, entities)
	if err != nil {
		return nil, err
	}
	w := gen.NewFileWriter(opts.out, g.Config())
	if err := w.Write(ctx, res.Units); err != nil {
		return nil, err
	}

	paths := append([]string(nil), w.Metrics().Paths...)
	sort.Strings(paths)
	for _, path := range paths {
		if rel, err := filepath.Rel(opts.out, path); err == nil {
			path = rel
		}
		fmt.Fprintf(out, "  %s %s\n", color.New(color.FgGreen).Sprint("write"), path)
	}
	summary := fmt.Sprintf("%d file(s) written", w.Metrics().FilesWritten)
	if n := len(res.Diagnostics); n > 0 {
		summary += color.New(color.FgYellow).Sprintf(", %d warning(s)", n)
	}
	fmt.Fprintln(out, summary)
	return res, nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounce collapses the burst of events an editor save produces.
const debounce = 200 * time.Millisecond

// WatchCmd returns the watch command.
func WatchCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "watch <files...>",
		Short: "Regenerate whenever a description file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := envDefaults(cmd.Flags(), map[string]string{"out": EnvOut}); err != nil {
				return err
			}
			return runWatch(cmd.Context(), a, opts, args, cmd.OutOrStdout(), debounce)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

// runWatch generates once, then again after every change to one of files,
// until ctx is done. Generation failures are logged and do not stop the
// watch.
func runWatch(ctx context.Context, a *app, opts *generateOptions, files []string, out io.Writer, wait time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files on save, so the parent folders are watched.
	watched := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
	}

	regenerate := func() {
		if _, err := runGenerate(ctx, a, opts, files, out); err != nil {
			a.logger.WithError(err).Error("generation failed")
		}
	}
	regenerate()
	fmt.Fprintln(out, color.New(color.FgCyan).Sprint("watching for changes..."))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			a.logger.WithField("file", ev.Name).Debug("changed")
			pending = time.After(wait)
		case <-pending:
			pending = nil
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.WithError(err).Warn("watch error")
		}
	}
}

package main

import (
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/frontend"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory for .cnf files and solve them on change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "settle time before solving a changed file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("watching directory", zap.String("dir", dir))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pending := map[string]time.Time{}
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".cnf") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			now := time.Now()
			for path, at := range pending {
				if now.Sub(at) < watchDebounce {
					continue
				}
				delete(pending, path)
				solveOne(path)
			}
		}
	}
}

func solveOne(path string) {
	s := core.NewDefaultSolver()
	vars, err := frontend.ReadDIMACS(s, path, strings.HasSuffix(path, ".gz"))
	if err != nil {
		logger.Warn("skipping unreadable instance", zap.String("file", path), zap.Error(err))
		return
	}

	state, err := s.Solve()
	if err != nil {
		logger.Warn("solve stopped early", zap.String("file", path), zap.Error(err))
	}
	logger.Info("solved changed instance",
		zap.String("file", filepath.Base(path)),
		zap.Int("variables", len(vars)),
		zap.String("status", state.String()),
		zap.Int64("conflicts", s.TotalConflicts),
	)
}

package main

import (
	"accircuit/analysis"
	"accircuit/load"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-analyze a circuit file every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := analysis.NewCache(cfg.CacheSize,
		analysis.WithLogger(logger),
		analysis.WithDefaultFrequency(cfg.DefaultFrequency))
	if err != nil {
		return err
	}
	w, err := load.NewWatcher(args[0], cfg.WatchDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	out := cmd.OutOrStdout()
	net, err := load.ReadFile(w.File)
	reanalyze(out, cache, load.Change{File: w.File, Network: net, Err: err})
	logger.Info("watching", "file", w.File, "debounce", cfg.WatchDebounce)

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			reanalyze(out, cache, change)
		}
	}
}

// reanalyze 分析一次变化, 错误只记录日志, 监视继续
func reanalyze(w io.Writer, cache *analysis.Cache, change load.Change) {
	if change.Err != nil {
		logger.Error("reload failed", "file", change.File, "err", change.Err)
		return
	}
	r, hit, err := cache.Analyze(change.Network)
	if err != nil {
		logger.Error("analysis failed", "file", change.File, "err", err)
		return
	}
	logger.Info("analyzed", "file", change.File, "cached", hit, "frequency", r.Frequency)
	if err := render(w, r); err != nil {
		logger.Error("render failed", "err", err)
	}
}

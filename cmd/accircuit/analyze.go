package main

import (
	"accircuit/analysis"
	"accircuit/load"
	"accircuit/report"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Solve a circuit file and print its phasor report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("html", "", "also write an interactive HTML report to this file")
	analyzeCmd.Flags().String("plot", "", "also write a phasor diagram to this file (.png, .svg, .pdf)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	net, err := load.ReadFile(args[0])
	if err != nil {
		return err
	}
	r, err := analysis.Analyze(net,
		analysis.WithLogger(logger),
		analysis.WithDefaultFrequency(cfg.DefaultFrequency))
	if err != nil {
		return err
	}
	if err := render(cmd.OutOrStdout(), r); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("html"); path != "" {
		if err := writeOutput(path, func(w io.Writer) error { return report.HTML(w, r) }); err != nil {
			return err
		}
		logger.Info("html report written", "path", path)
	}
	if path, _ := cmd.Flags().GetString("plot"); path != "" {
		format := report.PlotFormat(path)
		if err := writeOutput(path, func(w io.Writer) error { return report.PhasorPlot(w, r, format) }); err != nil {
			return err
		}
		logger.Info("phasor plot written", "path", path, "format", format)
	}
	return nil
}

// render 按配置的格式输出报告
func render(w io.Writer, r *analysis.Report) error {
	switch cfg.Format {
	case "json":
		return report.JSON(w, r)
	default:
		return report.Text(w, r, cfg.Precision)
	}
}

func writeOutput(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

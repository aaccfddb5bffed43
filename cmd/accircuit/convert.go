package main

import (
	"accircuit/load"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Convert a circuit between netlist and TOML formats",
	Long:  "The format of each file is chosen by its extension: .toml for TOML, anything else for the line netlist.",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	net, err := load.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := load.WriteFile(args[1], net); err != nil {
		return err
	}
	logger.Info("circuit converted",
		"from", args[0], "to", args[1],
		"format", load.FormatOf(args[1]).String(),
		"components", len(net.Components))
	return nil
}

package main

import (
	"accircuit/config"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg    config.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:           "accircuit",
	Short:         "Steady-state AC phasor analysis of linear circuits",
	Long:          "accircuit solves linear R/L/C networks driven by sinusoidal sources with modified nodal analysis and reports node voltages, branch currents and impedances.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		logger = cfg.NewLogger(cmd.ErrOrStderr())
		return nil
	},
}

// Execute 运行命令行, 出错时退出码为 1
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .accircuit.toml)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.Float64("frequency", 60, "analysis frequency in Hz when the circuit has no source")
	pf.String("format", "text", "report format: text or json")
	pf.Int("precision", 4, "significant digits in text reports")

	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("default_frequency", pf.Lookup("frequency"))
	_ = viper.BindPFlag("format", pf.Lookup("format"))
	_ = viper.BindPFlag("precision", pf.Lookup("precision"))
}

func initConfig() {
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".accircuit")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// 没有配置文件时使用默认值
	_ = viper.ReadInConfig()
}

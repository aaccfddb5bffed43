// Package config 运行时配置
// 取值顺序: 命令行参数 > ACCIRCUIT_* 环境变量 > .accircuit.toml > 默认值。
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "ACCIRCUIT"

// Config 运行时配置
type Config struct {
	DefaultFrequency float64       `mapstructure:"default_frequency"` // 网络中没有源时的分析频率(Hz)
	LogLevel         string        `mapstructure:"log_level"`         // debug/info/warn/error
	LogFormat        string        `mapstructure:"log_format"`        // text/json
	Format           string        `mapstructure:"format"`            // 报告格式 text/json
	Precision        int           `mapstructure:"precision"`         // 报告有效数字
	CacheSize        int           `mapstructure:"cache_size"`        // 分析结果缓存容量
	WatchDebounce    time.Duration `mapstructure:"watch_debounce"`    // 文件监视去抖间隔
}

// SetDefaults 注册默认值
func SetDefaults() {
	viper.SetDefault("default_frequency", 60.0)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("format", "text")
	viper.SetDefault("precision", 4)
	viper.SetDefault("cache_size", 64)
	viper.SetDefault("watch_debounce", 200*time.Millisecond)
}

// Load 从 viper 读取配置并校验
func Load() (Config, error) {
	SetDefaults()
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate 校验取值范围
func (cfg Config) Validate() error {
	if cfg.DefaultFrequency <= 0 {
		return fmt.Errorf("default_frequency must be positive, got %v", cfg.DefaultFrequency)
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}
	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", cfg.Format)
	}
	if cfg.Precision < 1 || cfg.Precision > 17 {
		return fmt.Errorf("precision must be within 1..17, got %d", cfg.Precision)
	}
	if cfg.CacheSize < 1 {
		return fmt.Errorf("cache_size must be positive, got %d", cfg.CacheSize)
	}
	if cfg.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %v", cfg.WatchDebounce)
	}
	return nil
}

// Level 日志级别
func (cfg Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// NewLogger 按配置创建日志, 输出到 w
func (cfg Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

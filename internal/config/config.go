// Package config 负责加载 gometric 的运行配置。
// 配置来源优先级：命令行参数 > 环境变量(GOMETRIC_*) > 配置文件 > 默认值。
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 是环境变量前缀，例如 GOMETRIC_REEK_BINARY。
const EnvPrefix = "GOMETRIC"

// Config 是完整的运行配置。
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Reek   ReekConfig   `mapstructure:"reek" yaml:"reek"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// LoggerConfig 控制 zap 日志输出。
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ReekConfig 对应 reek generator 的选项。
type ReekConfig struct {
	// Dirs 是需要扫描的目录（dirs_to_reek）。
	Dirs []string `mapstructure:"dirs" yaml:"dirs"`
	// ConfigFile 是传给 reek 的 .reek.yml 路径，可为空。
	ConfigFile string `mapstructure:"config_file" yaml:"config_file"`
	// Binary 是 reek 可执行文件。
	Binary string `mapstructure:"binary" yaml:"binary"`
	// ExcludePatterns 用于过滤不需要分析的文件。
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// OutputConfig 控制报告输出。
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// SetDefaults 注册全部默认值。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "gometric")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("reek.dirs", []string{"app", "lib"})
	v.SetDefault("reek.config_file", "")
	v.SetDefault("reek.binary", "reek")
	v.SetDefault("reek.exclude_patterns", []string{})

	v.SetDefault("output.format", "table")
	v.SetDefault("output.path", "")
}

// NewViper 创建带默认值和环境变量绑定的 viper 实例。
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile 读取指定的配置文件；path 为空时尝试当前目录下的 gometric.yaml，
// 找不到文件不算错误。
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("gometric")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// NewDefaultConfig 返回只包含默认值的配置。
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// FromViper 把 viper 中的值解析为 Config 并校验。
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate 检查配置取值是否合法。
func (c *Config) Validate() error {
	format := strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output.format %q is not supported, allowed values: table, json, yaml", c.Output.Format)
	}
	c.Output.Format = format

	if strings.TrimSpace(c.Reek.Binary) == "" {
		return errors.New("reek.binary must not be empty")
	}

	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format %q is not supported, allowed values: console, json", c.Logger.Format)
	}
	return nil
}

package reek

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Configuration 是加载后的 .reek.yml。
// 文件路径会原样传给 reek，这里的解析用于提前发现无效配置。
type Configuration struct {
	Path         string                               `yaml:"-"`
	Detectors    map[string]map[string]any            `yaml:"detectors"`
	Directories  map[string]map[string]map[string]any `yaml:"directories"`
	ExcludePaths []string                             `yaml:"exclude_paths"`
}

// LoadConfiguration 读取并解析 reek 配置文件，文件缺失或格式错误都会返回错误。
// filesystem 为 nil 时读取操作系统文件系统。
func LoadConfiguration(filesystem afero.Fs, path string) (*Configuration, error) {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand reek config path %q: %w", path, err)
	}

	content, err := afero.ReadFile(filesystem, expanded)
	if err != nil {
		return nil, fmt.Errorf("read reek config: %w", err)
	}

	cfg := &Configuration{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse reek config %s: %w", expanded, err)
	}
	cfg.Path = expanded
	return cfg, nil
}

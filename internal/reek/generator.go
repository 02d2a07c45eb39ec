package reek

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"gometric/internal/discovery"
	"gometric/internal/linenumbers"
	"gometric/internal/model"
)

// Metric 是 reek 在报告和行级说明中使用的标识。
const Metric = "reek"

// Options 是 reek generator 的输入。
type Options struct {
	// Dirs 是需要扫描的目录（dirs_to_reek）。
	Dirs []string
	// ConfigFile 是可选的 .reek.yml 路径。
	ConfigFile string
	// ExcludePatterns 交给 discovery.Excluder 过滤文件。
	ExcludePatterns []string
}

// Generator 串联 文件发现 -> 逐文件分析 -> 归一化 -> 行号解析 -> 写入汇总。
// 整个过程单线程顺序执行。
type Generator struct {
	options  Options
	analyzer SmellAnalyzer
	fs       afero.Fs
	registry *linenumbers.Registry
	logger   *zap.Logger

	output  []Examination
	matches []model.FileFinding
}

// Option 用于替换 Generator 的默认依赖。
type Option func(*Generator)

// WithFs 指定文件系统（默认是操作系统文件系统）。
func WithFs(filesystem afero.Fs) Option {
	return func(g *Generator) {
		g.fs = filesystem
	}
}

// WithRegistry 指定行号解析器注册中心。
func WithRegistry(registry *linenumbers.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithLogger 指定日志器。
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator 创建 reek generator。
func NewGenerator(options Options, analyzer SmellAnalyzer, opts ...Option) *Generator {
	g := &Generator{
		options:  options,
		analyzer: analyzer,
		fs:       afero.NewOsFs(),
		registry: linenumbers.NewRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.Named(Metric)
	return g
}

// Metric 返回指标名称。
func (g *Generator) Metric() string {
	return Metric
}

// Emit 发现目标文件并逐个调用分析器。
// 没有文件时仍然以空输入走完分析流程，保证后续结果结构一致。
func (g *Generator) Emit(ctx context.Context) error {
	files, err := g.filesToAnalyze()
	if err != nil {
		return err
	}

	if len(files) == 0 {
		g.logger.Info("Skipping Reek, no files found to analyze")
	}

	output, err := g.run(ctx, files)
	if err != nil {
		return err
	}
	g.output = output
	return nil
}

// run 顺序分析每个文件。没有文件时不读取 reek 配置。
func (g *Generator) run(ctx context.Context, files []string) ([]Examination, error) {
	if len(files) == 0 {
		return []Examination{}, nil
	}

	cfg, err := g.configuration()
	if err != nil {
		return nil, err
	}

	output := make([]Examination, 0, len(files))
	for _, file := range files {
		result, err := g.analyzer.Examine(ctx, file, cfg)
		if err != nil {
			return nil, fmt.Errorf("examine %s: %w", file, err)
		}
		output = append(output, result)
	}
	return output, nil
}

// configuration 在配置了 ConfigFile 时加载它，否则返回 nil。
func (g *Generator) configuration() (*Configuration, error) {
	if g.options.ConfigFile == "" {
		return nil, nil
	}
	return LoadConfiguration(g.fs, g.options.ConfigFile)
}

// Analyze 把分析结果归一化为按文件分组的 matches。
func (g *Generator) Analyze() error {
	g.matches = Normalize(g.output)
	return nil
}

// Matches 返回归一化结果。
func (g *Generator) Matches() []model.FileFinding {
	return g.matches
}

// Report 返回 {reek: {matches: [...]}}，matches 至少是空列表。
func (g *Generator) Report() model.Report {
	matches := g.matches
	if matches == nil {
		matches = []model.FileFinding{}
	}
	return model.Report{
		Metric: model.Report{
			"matches": matches,
		},
	}
}

// PerFileInfo 把每条坏味道写入行级汇总。
func (g *Generator) PerFileInfo(ctx context.Context, sink *model.Sink) error {
	emitter := NewEmitter(g.fs, g.registry, Metric, g.logger)
	return emitter.Emit(ctx, g.matches, sink)
}

// filesToAnalyze 查找全部 .rb 文件并移除被排除的文件。
func (g *Generator) filesToAnalyze() ([]string, error) {
	files, err := discovery.NewFinder(g.fs, ".rb", g.logger).Find(g.options.Dirs)
	if err != nil {
		return nil, err
	}

	excluder, err := discovery.NewExcluder(g.options.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	return excluder.Remove(files), nil
}

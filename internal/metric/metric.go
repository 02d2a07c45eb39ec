// Package metric 定义指标 generator 的统一接口，以及注册和调度逻辑。
package metric

import (
	"context"
	"fmt"
	"sort"

	"gometric/internal/model"
)

// Generator 是单个指标工具的生命周期。
type Generator interface {
	// Metric 返回指标名称（例如 reek），同时也是报告中的顶层键。
	Metric() string
	// Emit 运行外部工具并保存原始输出。
	Emit(ctx context.Context) error
	// Analyze 把原始输出整理为报告结构。
	Analyze() error
	// Report 返回可合并进总报告的结果。
	Report() model.Report
	// PerFileInfo 把结果写入行级汇总。
	PerFileInfo(ctx context.Context, sink *model.Sink) error
}

// Factory 在构造时创建 generator，依赖由闭包注入。
type Factory func() (Generator, error)

// Registry 管理 generator 工厂注册。
type Registry struct {
	factories map[string]Factory
}

// NewRegistry 创建空的注册中心。
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register 注册一个 generator 工厂，重复注册返回错误。
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("metric %q: name and factory are required", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("metric %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// New 创建指定名称的 generator。
func (r *Registry) New(name string) (Generator, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}
	generator, err := factory()
	if err != nil {
		return nil, fmt.Errorf("create metric %q: %w", name, err)
	}
	return generator, nil
}

// Names 返回已注册的指标名称（按字典序）。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run 依次执行每个 generator 的 Emit -> Analyze -> PerFileInfo，
// 并把所有 Report 合并为一份总报告。任意一步出错立即返回。
func Run(ctx context.Context, generators []Generator, sink *model.Sink) (model.Report, error) {
	report := model.Report{}

	for _, generator := range generators {
		name := generator.Metric()
		if err := generator.Emit(ctx); err != nil {
			return nil, fmt.Errorf("%s: emit: %w", name, err)
		}
		if err := generator.Analyze(); err != nil {
			return nil, fmt.Errorf("%s: analyze: %w", name, err)
		}
		if err := generator.PerFileInfo(ctx, sink); err != nil {
			return nil, fmt.Errorf("%s: per file info: %w", name, err)
		}
		report.Merge(generator.Report())
	}

	return report, nil
}

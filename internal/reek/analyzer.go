// Package reek 实现 reek 指标的 generator：
// 逐个文件调用 reek，把坏味道按文件归组，再把每条结果挂到具体行号上。
package reek

import (
	"context"

	"gometric/internal/model"
)

// SmellAnalyzer 是外部坏味道分析器的抽象，在构造 Generator 时注入。
type SmellAnalyzer interface {
	// Examine 分析单个文件。cfg 为 nil 表示使用分析器默认配置。
	Examine(ctx context.Context, path string, cfg *Configuration) (Examination, error)
}

// Examination 是单个文件的分析结果。
type Examination interface {
	Smells() []model.Smell
}

// Warning 对应 reek JSON 输出中的一条记录。
type Warning struct {
	WarningContext    string `json:"context"`
	WarningLines      []int  `json:"lines"`
	WarningMessage    string `json:"message"`
	WarningSmellType  string `json:"smell_type"`
	WarningSource     string `json:"source"`
	WarningSubclass   string `json:"subclass,omitempty"`
	DocumentationLink string `json:"documentation_link,omitempty"`
}

func (w *Warning) Source() string    { return w.WarningSource }
func (w *Warning) Context() string   { return w.WarningContext }
func (w *Warning) Message() string   { return w.WarningMessage }
func (w *Warning) SmellType() string { return w.WarningSmellType }
func (w *Warning) Lines() []int      { return w.WarningLines }

// SubclassedWarning 是带有细分类的记录（旧版 reek 的 subclass 字段）。
type SubclassedWarning struct {
	*Warning
}

// Subclass 返回细分类。
func (w SubclassedWarning) Subclass() string {
	return w.WarningSubclass
}

// asSmell 根据是否存在 subclass 选择具体类型。
func (w *Warning) asSmell() model.Smell {
	if w.WarningSubclass != "" {
		return SubclassedWarning{Warning: w}
	}
	return w
}

// examination 是 SmellAnalyzer 的通用结果实现。
type examination struct {
	path   string
	smells []model.Smell
}

// NewExamination 用已有的坏味道构造结果，主要供其他分析器实现和测试使用。
func NewExamination(path string, smells ...model.Smell) Examination {
	return &examination{path: path, smells: smells}
}

func (e *examination) Smells() []model.Smell {
	return e.smells
}

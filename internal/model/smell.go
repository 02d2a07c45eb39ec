// Package model 定义 gometric 的核心数据模型。
// 这些结构会被各个 generator、输出层和命令层共同使用。
package model

// Smell 是外部分析器产出的一条坏味道记录。
// 具体实现由分析器适配层提供，这里只声明归一化时需要读取的字段。
type Smell interface {
	// Source 返回分析器报告的文件路径（可能与请求路径不同）。
	Source() string
	// Context 返回坏味道所属的方法或作用域标识，例如 Foo#bar。
	Context() string
	// Message 返回可读的描述信息。
	Message() string
	// SmellType 返回坏味道的通用分类。
	SmellType() string
	// Lines 返回坏味道涉及的行号集合。
	Lines() []int
}

// Subclassed 由拥有更细粒度分类的坏味道实现。
// 归一化时优先使用 Subclass，否则回退到 SmellType。
type Subclassed interface {
	Subclass() string
}

// Category 返回坏味道在报告中使用的分类。
func Category(smell Smell) string {
	if sub, ok := smell.(Subclassed); ok {
		return sub.Subclass()
	}
	return smell.SmellType()
}

// SmellRecord 是单条坏味道的规范化形态。
type SmellRecord struct {
	Method  string `json:"method" yaml:"method"`
	Message string `json:"message" yaml:"message"`
	Type    string `json:"type" yaml:"type"`
	Lines   []int  `json:"lines" yaml:"lines"`
}

// FileFinding 表示单个文件的全部坏味道。
// 归一化完成后不再修改。
type FileFinding struct {
	FilePath   string        `json:"file_path" yaml:"file_path"`
	CodeSmells []SmellRecord `json:"code_smells" yaml:"code_smells"`
}

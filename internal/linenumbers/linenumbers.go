// Package linenumbers 把分析器报告的方法标识映射为源码行号。
// 分析器只给出方法/作用域名称，而报告按行展示，因此需要重新解析源码，
// 建立 方法标识 -> 行范围 的查找表。
package linenumbers

import (
	"context"
	"errors"
	"sort"
)

// ErrUnparsableSource 表示源码存在解析器无法处理的语法问题。
// 这是唯一可恢复的解析失败：调用方记录日志并跳过该文件。
var ErrUnparsableSource = errors.New("source could not be parsed into method boundaries")

// Parser 解析单个文件的源码并建立方法行号表。
type Parser interface {
	// Name 返回解析器名称（例如 Ruby）。
	Name() string
	// Extensions 返回该解析器负责的后缀列表（包含点号）。
	Extensions() []string
	// Parse 解析源码。语法问题返回 ErrUnparsableSource，其余错误原样返回。
	Parse(ctx context.Context, path string, source []byte) (*LineNumbers, error)
}

// Span 是一个闭区间行范围，行号从 1 开始。
type Span struct {
	Start int
	End   int
}

// LineNumbers 保存单个文件的方法行号表。
type LineNumbers struct {
	path      string
	locations map[string]Span
	methods   []namedSpan
}

type namedSpan struct {
	name string
	span Span
}

func newLineNumbers(path string) *LineNumbers {
	return &LineNumbers{
		path:      path,
		locations: make(map[string]Span),
	}
}

// Path 返回被解析的文件路径。
func (l *LineNumbers) Path() string {
	return l.path
}

// StartLineForMethod 返回方法起始行；未知方法返回 false。
func (l *LineNumbers) StartLineForMethod(method string) (int, bool) {
	span, ok := l.locations[method]
	if !ok {
		return 0, false
	}
	return span.Start, true
}

// SpanForMethod 返回方法的完整行范围。
func (l *LineNumbers) SpanForMethod(method string) (Span, bool) {
	span, ok := l.locations[method]
	return span, ok
}

// InMethod 判断某一行是否落在任意方法体内。
func (l *LineNumbers) InMethod(line int) bool {
	_, ok := l.MethodAtLine(line)
	return ok
}

// MethodAtLine 返回包含该行的最内层方法。
func (l *LineNumbers) MethodAtLine(line int) (string, bool) {
	best := -1
	for i, item := range l.methods {
		if line < item.span.Start || line > item.span.End {
			continue
		}
		if best < 0 || item.span.Start >= l.methods[best].span.Start {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return l.methods[best].name, true
}

// Methods 返回所有已知标识（按字典序），主要用于调试输出。
func (l *LineNumbers) Methods() []string {
	names := make([]string, 0, len(l.locations))
	for name := range l.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// addMethod 记录一个方法，第一个名字作为 MethodAtLine 的返回值，其余为别名。
// 同名重复定义时以后出现的为准。
func (l *LineNumbers) addMethod(span Span, name string, aliases ...string) {
	l.locations[name] = span
	for _, alias := range aliases {
		l.locations[alias] = span
	}
	l.methods = append(l.methods, namedSpan{name: name, span: span})
}

// addScope 记录类或模块本身，不参与 MethodAtLine。
func (l *LineNumbers) addScope(span Span, name string) {
	if _, exists := l.locations[name]; exists {
		// 重新打开的类保留第一次出现的位置。
		return
	}
	l.locations[name] = span
}

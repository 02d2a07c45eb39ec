package linenumbers

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// RubyParser 基于 tree-sitter 的 Ruby 方法边界解析器。
//
// 标识命名规则：
// - 实例方法：A::B#m
// - 单例方法（def self.m 或 class << self 中的 def m）：A::B::m，别名 A::B.m、A::B#self.m
// - 类/模块本身：A::B
// - 顶层方法：m，别名 #m
type RubyParser struct{}

// Name 返回语言名称。
func (p *RubyParser) Name() string {
	return "Ruby"
}

// Extensions 返回 Ruby 相关后缀。
func (p *RubyParser) Extensions() []string {
	return []string{".rb", ".rake", ".gemspec", ".ru", ".ruby"}
}

// Parse 解析源码并建立方法行号表。
func (p *RubyParser) Parse(ctx context.Context, path string, source []byte) (*LineNumbers, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s: %w", path, ErrUnparsableSource)
	}

	walker := &rubyWalker{
		source: source,
		lines:  newLineNumbers(path),
	}
	walker.walk(root, "", false)
	return walker.lines, nil
}

// rubyWalker 递归遍历语法树，scope 为当前类/模块的全名。
type rubyWalker struct {
	source []byte
	lines  *LineNumbers
}

func (w *rubyWalker) walk(node *sitter.Node, scope string, singleton bool) {
	switch node.Type() {
	case "class", "module":
		name := w.scopeName(node, scope)
		w.lines.addScope(spanOf(node), name)
		w.walkChildren(node, name, false)
		return

	case "singleton_class":
		target := scope
		if value := node.ChildByFieldName("value"); value != nil && value.Type() != "self" {
			target = w.content(value)
		}
		w.walkChildren(node, target, true)
		return

	case "method":
		name := w.content(node.ChildByFieldName("name"))
		if singleton {
			w.addSingletonMethod(scope, name, spanOf(node))
		} else {
			w.addInstanceMethod(scope, name, spanOf(node))
		}
		w.walkChildren(node, scope, false)
		return

	case "singleton_method":
		target := scope
		if object := node.ChildByFieldName("object"); object != nil && object.Type() != "self" {
			target = w.content(object)
		}
		w.addSingletonMethod(target, w.content(node.ChildByFieldName("name")), spanOf(node))
		w.walkChildren(node, scope, false)
		return
	}

	w.walkChildren(node, scope, singleton)
}

func (w *rubyWalker) walkChildren(node *sitter.Node, scope string, singleton bool) {
	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		if child := node.NamedChild(i); child != nil {
			w.walk(child, scope, singleton)
		}
	}
}

func (w *rubyWalker) addInstanceMethod(scope string, name string, span Span) {
	if name == "" {
		return
	}
	if scope == "" {
		w.lines.addMethod(span, name, "#"+name)
		return
	}
	w.lines.addMethod(span, scope+"#"+name)
}

func (w *rubyWalker) addSingletonMethod(scope string, name string, span Span) {
	if name == "" {
		return
	}
	if scope == "" {
		w.lines.addMethod(span, name, "self."+name)
		return
	}
	w.lines.addMethod(span, scope+"::"+name, scope+"."+name, scope+"#self."+name)
}

// scopeName 计算类/模块全名，class A::B 在模块 M 内得到 M::A::B。
func (w *rubyWalker) scopeName(node *sitter.Node, outer string) string {
	name := strings.TrimPrefix(w.content(node.ChildByFieldName("name")), "::")
	if name == "" {
		return outer
	}
	if outer == "" {
		return name
	}
	return outer + "::" + name
}

func (w *rubyWalker) content(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(w.source)
}

func spanOf(node *sitter.Node) Span {
	return Span{
		Start: int(node.StartPoint().Row) + 1,
		End:   int(node.EndPoint().Row) + 1,
	}
}

package linenumbers

import (
	"path/filepath"
	"sort"
	"strings"
)

// templateExtensions 是模板/标记语言后缀，这类文件不尝试解析。
var templateExtensions = []string{".erb", ".haml", ".html"}

// Registry 管理解析器注册与后缀映射。
type Registry struct {
	parsers     []Parser
	parserByExt map[string]Parser
	fallback    Parser
	skipped     map[string]struct{}
}

// NewRegistry 创建并注册内置解析器。未知后缀回退到 Ruby 解析器。
func NewRegistry() *Registry {
	rubyParser := &RubyParser{}
	return NewRegistryWith(rubyParser, rubyParser)
}

// NewRegistryWith 使用给定解析器创建注册中心，fallback 可以为 nil。
func NewRegistryWith(fallback Parser, parsers ...Parser) *Registry {
	registry := &Registry{
		parsers:     parsers,
		parserByExt: make(map[string]Parser),
		fallback:    fallback,
		skipped:     make(map[string]struct{}),
	}

	for _, parser := range parsers {
		for _, ext := range parser.Extensions() {
			registry.parserByExt[strings.ToLower(ext)] = parser
		}
	}
	for _, ext := range templateExtensions {
		registry.skipped[ext] = struct{}{}
	}

	return registry
}

// Skipped 判断文件是否属于不解析的模板类文件。
func (r *Registry) Skipped(path string) bool {
	_, ok := r.skipped[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ParserForFile 根据文件后缀查找解析器。
func (r *Registry) ParserForFile(path string) (Parser, bool) {
	if r.Skipped(path) {
		return nil, false
	}
	if parser, ok := r.parserByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return parser, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

// Extensions 返回全部已注册后缀（按字典序）。
func (r *Registry) Extensions() []string {
	extensions := make([]string, 0, len(r.parserByExt))
	for ext := range r.parserByExt {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

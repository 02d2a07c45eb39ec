package model

import (
	"slices"
	"sort"
)

// Annotation 是写入行级汇总的一条说明。
type Annotation struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// Sink 按 文件路径 -> 行号字符串 -> 说明列表 汇总多个工具的结果。
//
// 注意：
// - 只追加，不覆盖；同一行的多条说明按写入顺序保留
// - 不是并发安全的，多个写入方需要由调用者串行化
type Sink struct {
	files map[string]map[string][]Annotation
}

// NewSink 创建一个空的汇总表。
func NewSink() *Sink {
	return &Sink{files: make(map[string]map[string][]Annotation)}
}

// Append 在 file/line 下追加一条说明。
func (s *Sink) Append(file string, line string, annotation Annotation) {
	if s.files == nil {
		s.files = make(map[string]map[string][]Annotation)
	}
	lines, ok := s.files[file]
	if !ok {
		lines = make(map[string][]Annotation)
		s.files[file] = lines
	}
	lines[line] = append(lines[line], annotation)
}

// Lines 返回某个文件的行级说明；文件不存在时返回 nil。
func (s *Sink) Lines(file string) map[string][]Annotation {
	return s.files[file]
}

// Files 返回已写入的文件列表（按字典序）。
func (s *Sink) Files() []string {
	files := make([]string, 0, len(s.files))
	for file := range s.files {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Snapshot 返回汇总内容的副本，供序列化输出使用，修改副本不会影响 Sink。
func (s *Sink) Snapshot() map[string]map[string][]Annotation {
	snapshot := make(map[string]map[string][]Annotation, len(s.files))
	for file, lines := range s.files {
		copied := make(map[string][]Annotation, len(lines))
		for line, annotations := range lines {
			copied[line] = slices.Clone(annotations)
		}
		snapshot[file] = copied
	}
	return snapshot
}

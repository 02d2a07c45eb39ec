// Package report 提供 gometric 的输出能力。
// 当前实现支持 table 控制台格式、JSON 与 YAML（含文件导出）。
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"gometric/internal/model"
)

// Document 是一次运行的完整输出：合并后的报告和行级汇总。
type Document struct {
	Report  model.Report                             `json:"report" yaml:"report"`
	PerFile map[string]map[string][]model.Annotation `json:"per_file" yaml:"per_file"`
}

// NewDocument 组装输出文档。
func NewDocument(report model.Report, sink *model.Sink) Document {
	return Document{Report: report, PerFile: sink.Snapshot()}
}

// Print 按格式输出到 writer。
func Print(writer io.Writer, format string, doc Document) error {
	switch format {
	case "table":
		return PrintTable(writer, doc)
	case "json":
		return PrintJSON(writer, doc)
	case "yaml":
		return PrintYAML(writer, doc)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// PrintTable 使用表格展示每个指标的 matches 以及行级说明。
func PrintTable(writer io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	metrics := make([]string, 0, len(doc.Report))
	for name := range doc.Report {
		metrics = append(metrics, name)
	}
	sort.Strings(metrics)

	for _, name := range metrics {
		matches, ok := matchesOf(doc.Report[name])
		if !ok {
			continue
		}

		if _, err := fmt.Fprintf(tw, "METRIC\t%s\n\n", name); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(tw, "FILE\tMETHOD\tTYPE\tLINES\tMESSAGE"); err != nil {
			return err
		}
		for _, finding := range matches {
			for _, smell := range finding.CodeSmells {
				if _, err := fmt.Fprintf(
					tw,
					"%s\t%s\t%s\t%s\t%s\n",
					finding.FilePath,
					smell.Method,
					smell.Type,
					joinLines(smell.Lines),
					smell.Message,
				); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "FILE\tLINE\tTOOL\tDESCRIPTION"); err != nil {
		return err
	}
	files := make([]string, 0, len(doc.PerFile))
	for file := range doc.PerFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		lines := doc.PerFile[file]
		for _, line := range sortedLines(lines) {
			for _, annotation := range lines[line] {
				if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", file, line, annotation.Type, annotation.Description); err != nil {
					return err
				}
			}
		}
	}

	return tw.Flush()
}

// PrintJSON 把文档按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, doc Document) error {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把文档输出为 YAML。
func PrintYAML(writer io.Writer, doc Document) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return encoder.Close()
}

// WriteFile 将文档按格式导出到指定路径。
// 如果目录不存在会自动创建。
func WriteFile(path string, format string, doc Document) error {
	var buffer bytes.Buffer
	if err := Print(&buffer, format, doc); err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, buffer.Bytes(), 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// matchesOf 从 {matches: [...]} 结构中取出 FileFinding 列表。
func matchesOf(value any) ([]model.FileFinding, bool) {
	section, ok := value.(model.Report)
	if !ok {
		return nil, false
	}
	matches, ok := section["matches"].([]model.FileFinding)
	return matches, ok
}

// sortedLines 按数值大小排序行号键，非数字键排在最后。
func sortedLines(lines map[string][]model.Annotation) []string {
	keys := make([]string, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i int, j int) bool {
		left, leftErr := strconv.Atoi(keys[i])
		right, rightErr := strconv.Atoi(keys[j])
		switch {
		case leftErr == nil && rightErr == nil:
			return left < right
		case leftErr == nil:
			return true
		case rightErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func joinLines(lines []int) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strconv.Itoa(line))
	}
	return strings.Join(parts, ",")
}

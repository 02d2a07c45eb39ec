package reek

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"gometric/internal/linenumbers"
	"gometric/internal/model"
)

// Emitter 把归一化结果写入行级汇总。
type Emitter struct {
	fs       afero.Fs
	registry *linenumbers.Registry
	tag      string
	logger   *zap.Logger
}

// NewEmitter 创建 Emitter，tag 是写入每条说明的工具标识。
func NewEmitter(filesystem afero.Fs, registry *linenumbers.Registry, tag string, logger *zap.Logger) *Emitter {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	if registry == nil {
		registry = linenumbers.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		fs:       filesystem,
		registry: registry,
		tag:      tag,
		logger:   logger,
	}
}

// Emit 按 findings 顺序写入 sink。
// 模板文件直接跳过；解析器无法处理的文件记录日志后跳过；其余错误中断整个过程。
func (e *Emitter) Emit(ctx context.Context, findings []model.FileFinding, sink *model.Sink) error {
	for _, finding := range findings {
		lines, err := e.lineNumbers(ctx, finding.FilePath)
		if err != nil {
			return err
		}
		if lines == nil {
			continue
		}

		for _, record := range finding.CodeSmells {
			line, ok := lines.StartLineForMethod(record.Method)
			if !ok {
				e.logger.Debug("no line found for method, dropping finding",
					zap.String("file", finding.FilePath),
					zap.String("method", record.Method),
					zap.String("type", record.Type),
				)
				continue
			}

			sink.Append(finding.FilePath, strconv.Itoa(line), model.Annotation{
				Type:        e.tag,
				Description: record.Type + " - " + record.Message,
			})
		}
	}
	return nil
}

// lineNumbers 解析单个文件；返回 nil, nil 表示该文件应被跳过。
func (e *Emitter) lineNumbers(ctx context.Context, filePath string) (*linenumbers.LineNumbers, error) {
	parser, ok := e.registry.ParserForFile(filePath)
	if !ok {
		return nil, nil
	}

	source, err := afero.ReadFile(e.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	lines, err := parser.Parse(ctx, filePath, source)
	if err != nil {
		if errors.Is(err, linenumbers.ErrUnparsableSource) {
			e.logger.Warn(fmt.Sprintf("ruby parser blew up while trying to parse %s. "+
				"You won't have method level reek information for this file.", filePath),
				zap.Error(err),
			)
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}

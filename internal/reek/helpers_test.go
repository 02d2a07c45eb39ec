package reek

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gometric/internal/linenumbers"
	"gometric/internal/model"
)

// warning 构造一条没有细分类的测试记录。
func warning(source, context, smellType, message string, lines ...int) *Warning {
	return &Warning{
		WarningSource:    source,
		WarningContext:   context,
		WarningSmellType: smellType,
		WarningMessage:   message,
		WarningLines:     lines,
	}
}

// subclassed 构造一条带细分类的测试记录。
func subclassed(source, context, smellType, subclass, message string) model.Smell {
	w := warning(source, context, smellType, message)
	w.WarningSubclass = subclass
	return w.asSmell()
}

// observedLogger 返回一个会记录全部日志的 logger。
func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// writeFixtureFile 在内存文件系统中写入测试文件。
func writeFixtureFile(t *testing.T, filesystem afero.Fs, filePath string, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(filesystem, filePath, []byte(content), 0o644))
}

// stubAnalyzer 按路径返回预先准备好的坏味道，并记录调用参数。
type stubAnalyzer struct {
	smells  map[string][]model.Smell
	err     error
	calls   []string
	configs []*Configuration
}

func (s *stubAnalyzer) Examine(_ context.Context, path string, cfg *Configuration) (Examination, error) {
	s.calls = append(s.calls, path)
	s.configs = append(s.configs, cfg)
	if s.err != nil {
		return nil, s.err
	}
	return NewExamination(path, s.smells[path]...), nil
}

// stubParser 总是返回固定错误的解析器。
type stubParser struct {
	err error
}

func (p *stubParser) Name() string         { return "Stub" }
func (p *stubParser) Extensions() []string { return []string{".rb"} }
func (p *stubParser) Parse(context.Context, string, []byte) (*linenumbers.LineNumbers, error) {
	return nil, p.err
}

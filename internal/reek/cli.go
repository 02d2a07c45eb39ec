package reek

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"gometric/internal/model"
)

// exitSmellsFound 是 reek 发现坏味道时的退出码，输出仍然有效。
const exitSmellsFound = 2

// CLIAnalyzer 通过调用 reek 命令行实现 SmellAnalyzer，每个文件执行一次。
type CLIAnalyzer struct {
	binary string
	logger *zap.Logger
}

// NewCLIAnalyzer 创建命令行分析器，binary 为空时使用 PATH 中的 reek。
func NewCLIAnalyzer(binary string, logger *zap.Logger) *CLIAnalyzer {
	if strings.TrimSpace(binary) == "" {
		binary = "reek"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIAnalyzer{
		binary: binary,
		logger: logger.Named("reek_cli"),
	}
}

// Args 返回分析 path 时传给 reek 的参数。
func (a *CLIAnalyzer) Args(path string, cfg *Configuration) []string {
	args := []string{"--format", "json", "--no-progress"}
	if cfg != nil && cfg.Path != "" {
		args = append(args, "--config", cfg.Path)
	}
	return append(args, path)
}

// Examine 执行 reek 并解析 JSON 输出。
func (a *CLIAnalyzer) Examine(ctx context.Context, path string, cfg *Configuration) (Examination, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.binary, a.Args(path, cfg)...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != exitSmellsFound {
			return nil, fmt.Errorf("run %s on %s: %w: %s", a.binary, path, err, strings.TrimSpace(stderr.String()))
		}
	}

	smells, err := ParseWarnings(out)
	if err != nil {
		return nil, fmt.Errorf("decode reek output for %s: %w", path, err)
	}

	a.logger.Debug("examined file", zap.String("file", path), zap.Int("smells", len(smells)))
	return NewExamination(path, smells...), nil
}

// ParseWarnings 解析 reek --format json 的输出。空输出视为没有坏味道。
func ParseWarnings(raw []byte) ([]model.Smell, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var warnings []*Warning
	if err := json.Unmarshal(raw, &warnings); err != nil {
		return nil, err
	}

	smells := make([]model.Smell, 0, len(warnings))
	for _, warning := range warnings {
		if warning == nil {
			return nil, errors.New("reek output contains a null warning")
		}
		smells = append(smells, warning.asSmell())
	}
	return smells, nil
}

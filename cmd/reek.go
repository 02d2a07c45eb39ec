package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gometric/internal/metric"
	"gometric/internal/model"
	"gometric/internal/reek"
	"gometric/internal/report"
)

// newReekCmd 创建 reek 子命令。
// 示例：
//
//	gometric reek
//	gometric reek app lib --format json --output tmp/reek.json
//	gometric reek lib --reek-config .reek.yml --exclude 'vendor'
func newReekCmd(a *app) *cobra.Command {
	reekCmd := &cobra.Command{
		Use:   "reek [dirs...]",
		Short: "运行 reek 并输出按文件、按行归并的坏味道报告",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.cfg.Reek.Dirs = args
			}

			generator, err := a.registry.New(reek.Metric)
			if err != nil {
				return err
			}

			sink := model.NewSink()
			result, err := metric.Run(cmd.Context(), []metric.Generator{generator}, sink)
			if err != nil {
				return err
			}

			doc := report.NewDocument(result, sink)
			if err := report.Print(cmd.OutOrStdout(), a.cfg.Output.Format, doc); err != nil {
				return err
			}

			outputPath := strings.TrimSpace(a.cfg.Output.Path)
			if outputPath == "" {
				return nil
			}
			if err := report.WriteFile(outputPath, a.cfg.Output.Format, doc); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Report exported to %s\n", outputPath)
			return nil
		},
	}

	flags := reekCmd.Flags()
	flags.String("format", "", "输出格式: table、json 或 yaml（默认 table）")
	flags.String("output", "", "报告导出文件路径，为空时只输出到终端")
	flags.String("reek-config", "", "传给 reek 的 .reek.yml 路径")
	flags.StringSlice("exclude", nil, "排除的文件通配模式，可重复指定")
	flags.String("reek-bin", "", "reek 可执行文件（默认 reek）")

	bindings := map[string]string{
		"output.format":         "format",
		"output.path":           "output",
		"reek.config_file":      "reek-config",
		"reek.exclude_patterns": "exclude",
		"reek.binary":           "reek-bin",
	}
	for key, flag := range bindings {
		// flag 均已定义，BindPFlag 不会失败。
		_ = a.viper.BindPFlag(key, flags.Lookup(flag))
	}

	return reekCmd
}

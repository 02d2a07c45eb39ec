// Package cmd 提供 gometric 的命令行入口与子命令编排。
package cmd

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"gometric/internal/config"
	"gometric/internal/linenumbers"
	"gometric/internal/metric"
	"gometric/internal/observability"
	"gometric/internal/reek"
)

// app 保存一次命令执行期间共享的配置、日志器和 generator 注册中心。
type app struct {
	viper    *viper.Viper
	cfg      *config.Config
	logger   *zap.Logger
	registry *metric.Registry
}

// newApp 创建 app 并注册全部内置 generator。
// 工厂在命令运行时才被调用，此时配置已经加载完成。
func newApp() (*app, error) {
	a := &app{
		viper:    config.NewViper(),
		cfg:      config.NewDefaultConfig(),
		logger:   zap.NewNop(),
		registry: metric.NewRegistry(),
	}

	err := a.registry.Register(reek.Metric, func() (metric.Generator, error) {
		options := reek.Options{
			Dirs:            a.cfg.Reek.Dirs,
			ConfigFile:      a.cfg.Reek.ConfigFile,
			ExcludePatterns: a.cfg.Reek.ExcludePatterns,
		}
		analyzer := reek.NewCLIAnalyzer(a.cfg.Reek.Binary, a.logger)
		return reek.NewGenerator(options, analyzer,
			reek.WithFs(afero.NewOsFs()),
			reek.WithRegistry(linenumbers.NewRegistry()),
			reek.WithLogger(a.logger),
		), nil
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// load 读取配置文件并初始化日志器。
func (a *app) load(cfgFile string) error {
	if err := config.ReadFile(a.viper, cfgFile); err != nil {
		return err
	}

	cfg, err := config.FromViper(a.viper)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = observability.NewStderrLogger(cfg.Logger)
	return nil
}

// Execute 组装根命令并执行。ctx 取消时正在运行的 reek 子进程会被终止。
func Execute(ctx context.Context, version string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() {
		_ = a.logger.Sync()
	}()

	return newRootCmd(version, a).ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, a *app) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "gometric",
		Short: "代码质量指标聚合工具",
		Long: "gometric 调用外部静态分析工具（目前为 reek），\n" +
			"把结果整理为按文件、按行归并的统一报告，支持 table/json/yaml 输出。",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load(cfgFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径，默认读取 ./gometric.yaml")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newMetricsCmd(a))
	rootCmd.AddCommand(newReekCmd(a))

	return rootCmd
}

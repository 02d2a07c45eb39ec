package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newMetricsCmd 创建 metrics 子命令，展示已注册的 generator。
func newMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "展示已注册的指标 generator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "METRIC"); err != nil {
				return err
			}
			for _, name := range a.registry.Names() {
				if _, err := fmt.Fprintln(writer, name); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}

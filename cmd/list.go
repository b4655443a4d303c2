package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"awaitscan.dev/pkg/awaitscan/internal/domain"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

var listParallelFlag int

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <directory>",
		Short: "List per-file await/async counts",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := resolveWorkflow(cmd).List(cmd.Context(), domain.ScanArgs{
				Root:    m.Path(args[0]),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: resolveParallel(cmd),
			})

			return err
		},
	}

	cmd.Flags().IntVarP(&listParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel scan workers")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

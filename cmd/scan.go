package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"awaitscan.dev/pkg/awaitscan/internal/domain"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

var scanSaveFlag bool
var scanParallelFlag int

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory tree for await/async identifiers",
		Long:  scanLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := resolveWorkflow(cmd).Scan(cmd.Context(), domain.ScanArgs{
				Root:    m.Path(args[0]),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: resolveParallel(cmd),
				Save:    scanSaveFlag,
				Reports: m.Path(viper.GetString(outputFlagName)),
			})

			return err
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel scan workers")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
	cmd.Flags().BoolVar(&scanSaveFlag, saveFlagName, false, "save a YAML report of the scan to the output directory")
}

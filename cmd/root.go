// Package cmd provides the root command and CLI setup for awaitscan.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"awaitscan.dev/pkg/awaitscan/internal/adapter"
	"awaitscan.dev/pkg/awaitscan/internal/controller"
	"awaitscan.dev/pkg/awaitscan/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var tokenizerAdapter adapter.TokenizerAdapter
var reportStore adapter.ReportStore

// workflow is built per invocation so the UI choice can follow the --tui
// flag; tests inject a mock here instead.
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// tuiFlag opts into the interactive progress display. Plain output is the
// default: its line format is the tool's stable contract.
var tuiFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	tokenizerAdapter = adapter.NewGoTokenizerAdapter()
	reportStore = adapter.NewReportStore()
}

const rootLongDescription = `Awaitscan walks a directory tree of Go source files, tokenizes each file
and counts identifier tokens spelled "await" or "async", reporting every
occurrence with its position. Files that cannot be tokenized (syntax or
encoding faults) are reported individually and counted as errors; they
never abort the scan.`

const scanLongDescription = `Scan the given directory recursively and print one line per occurrence,
followed by the totals. Only files ending in ".go" are visited.`

const listLongDescription = `Scan the given directory and print a per-file table of occurrence counts
instead of individual match lines.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "awaitscan",
		Short: "Count await/async identifiers in Go source trees",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for saved scan reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVar(&tuiFlag, tuiFlagName, false, "interactive progress display (requires a terminal)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// resolveParallel returns the worker count for the invoked command. scan and
// list each register their own parallel flag while Viper keeps a single
// binding per key, so the invoked command's flag is rebound before the read.
func resolveParallel(cmd *cobra.Command) int {
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	return viper.GetInt(runParallelConfigKey)
}

// resolveWorkflow returns the injected workflow if a test set one, otherwise
// wires the real pipeline with a UI matching the --tui flag.
func resolveWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	ui := controller.NewUI(cmd, tuiFlag && controller.IsTTY(os.Stdout))
	streamer := domain.NewSourceStreamer(fsAdapter)
	scanner := domain.NewFileScanner(fsAdapter, tokenizerAdapter)

	return domain.NewWorkflow(fsAdapter, streamer, scanner, reportStore, ui)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kilnproj/kiln/pkg/telemetry"
)

var (
	// Global flags
	configName  string
	buildDir    string
	verbose     bool
	toolVersion string
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	toolVersion = version
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kiln",
		Short: "Kiln - cross-platform native project generator",
		Long: `Kiln reads a declarative Kiln.toml project description and emits
native build projects for every platform the project targets.

Supported output formats:
  - Visual Studio solutions (Windows, Android)
  - Xcode projects (macOS, iOS, tvOS)
  - Makefiles (Linux, HTML5)
  - CMake + Gradle (Android)`,
		Version: version + " (commit: " + commit + ", built: " + buildDate + ")",
		// main prints the one diagnostic line; cobra must not print the
		// error again or dump usage around it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.Setup(verbose)
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configName, "config", "c", "Kiln.toml", "project config file name")
	rootCmd.PersistentFlags().StringVarP(&buildDir, "build", "b", "build", "output directory for generated projects")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newGenCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newTestCommand())

	return rootCmd
}

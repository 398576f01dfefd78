package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/revctl/internal/cli"
)

var (
	configPath   string
	verbose      bool
	outputFormat string
	manifest     string
	envFile      string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revctl",
		Short: "Manage revisions of a deployed frontend",
		Long: `revctl uploads built frontends to a revision store and switches between them:
- upload: store the artifact under a fresh revision key and make it current
- list: show uploaded revisions and which one is current
- activate: make an earlier revision current again`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json, yaml)")
	cmd.PersistentFlags().StringVarP(&manifest, "manifest", "m", "", "manifest to operate on (overrides deploy.manifest)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "file with REVCTL_ variables (default: .env if present)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.OutputFormat = &outputFormat
	cli.Manifest = &manifest
	cli.EnvFile = &envFile

	// Add subcommands
	cmd.AddCommand(
		cli.NewUploadCmd(),
		cli.NewListCmd(),
		cli.NewActivateCmd(),
		cli.NewConfigCmd(),
		cli.NewHookCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}

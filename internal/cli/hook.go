package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/revctl/internal/logger"
	"github.com/glorpus-work/revctl/pkg/fsutil"
	"github.com/glorpus-work/revctl/pkg/hooks"
)

// NewHookCmd creates the hook command with subcommands.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage lifecycle hook scripts",
		Long: `Manage the tengo scripts run around uploads and activations.

Scripts are configured with deploy.hooks.pre_upload, deploy.hooks.post_upload
and deploy.hooks.post_activate.`,
	}

	cmd.AddCommand(newHookInitCmd())

	return cmd
}

func newHookInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <hook-type> <output-file>",
		Short: "Write a starter hook script",
		Long: fmt.Sprintf(`Write a starter tengo script for a hook type.

Hook types: %s`, strings.Join(hookTypeNames(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hookType := hooks.HookType(args[0])
			if !hookType.IsValid() {
				return fmt.Errorf("unknown hook type %q, must be one of: %s", args[0], strings.Join(hookTypeNames(), ", "))
			}

			outputFile, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("invalid output file: %w", err)
			}
			if _, err := os.Stat(outputFile); err == nil && !force {
				return fmt.Errorf("hook script already exists at %s (use --force to overwrite)", outputFile)
			}

			if err := fsutil.EnsureFileDir(outputFile); err != nil {
				return err
			}
			if err := os.WriteFile(outputFile, []byte(hooks.HookTemplate(hookType)+"\n"), fsutil.FileModeDefault); err != nil {
				return fmt.Errorf("failed to write hook script: %w", err)
			}

			logger.Success("Hook script created", logger.Fields{"type": string(hookType), "path": outputFile})
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s hook at %s\n", hookType, outputFile)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite output file if it exists")

	cmd.Example = `  # Abort uploads from a dirty tree
  revctl hook init pre-upload hooks/pre-upload.tengo
  revctl config set deploy.hooks.pre_upload hooks/pre-upload.tengo`

	return cmd
}

func hookTypeNames() []string {
	types := hooks.Types()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

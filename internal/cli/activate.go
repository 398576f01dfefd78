package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/revctl/pkg/revision"
)

// NewActivateCmd creates the activate command.
func NewActivateCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "activate [REVISION]",
		Short: "Make an uploaded revision current",
		Long: `Make an uploaded revision current, for example to roll back.

The revision is passed with --revision or as the only argument and must be a
key printed by list, such as frontend:1a2b3c4.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return err
			}
			if len(args) == 1 && cmd.Flags().Changed("revision") {
				return fmt.Errorf("revision given both with --revision and as an argument, use one of them")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				key = args[0]
			}
			return runOutcome(cmd, func(ctx context.Context, s *session) (revision.Outcome, error) {
				return s.manager.Activate(ctx, key), nil
			})
		},
	}

	cmd.Flags().StringVarP(&key, "revision", "r", "", "revision key to activate")

	return cmd
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/revctl/pkg/revision"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded revisions",
		Long: `List the revisions uploaded for the manifest, marking the current one.

Both the history and the current revision are fetched from the store. If
either request fails nothing is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutcome(cmd, func(ctx context.Context, s *session) (revision.Outcome, error) {
				return s.manager.List(ctx), nil
			})
		},
	}

	return cmd
}

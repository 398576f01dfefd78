package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/revctl/internal/logger"
	"github.com/glorpus-work/revctl/pkg/artifact"
	"github.com/glorpus-work/revctl/pkg/revision"
)

// NewUploadCmd creates the upload command.
func NewUploadCmd() *cobra.Command {
	var artifactPath, entry string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload the built artifact as a new revision",
		Long: `Upload the built artifact as a new revision and make it current.

The artifact is read from deploy.artifact.path, which may be a file, a
directory or an archive (tar, tar.gz, zip, ...). For directories and archives
deploy.artifact.entry names the file to upload, index.html by default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutcome(cmd, func(ctx context.Context, s *session) (revision.Outcome, error) {
				src := artifact.Source{
					Path:  s.cfg.Deploy.Artifact.Path,
					Entry: s.cfg.Deploy.Artifact.Entry,
				}
				if cmd.Flags().Changed("artifact") {
					src = artifact.Source{Path: artifactPath}
				}
				if cmd.Flags().Changed("entry") {
					src.Entry = entry
				}

				value, err := artifact.Load(ctx, src)
				if err != nil {
					return revision.Outcome{}, err
				}
				logger.Info("Uploading revision", logger.Fields{"manifest": s.manager.Manifest(), "artifact": src.String()})
				return s.manager.Upload(ctx, value), nil
			})
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "", "file, directory or archive to upload (default: deploy.artifact.path)")
	cmd.Flags().StringVar(&entry, "entry", "", "file inside the artifact directory or archive (default: deploy.artifact.entry)")

	return cmd
}

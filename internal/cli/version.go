package cli

import (
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"selpkm/internal/storage"
)

// Version is the application version.
var Version = semver.Version{Minor: 1, Build: semver.Commit()}

// VersionOutput describes the binary.
type VersionOutput struct {
	Version       string `json:"version" yaml:"version"`
	SchemaVersion int    `json:"schema_version" yaml:"schema_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := VersionOutput{
				Version:       Version.String(),
				SchemaVersion: latestSchemaVersion(),
			}
			return formatter(cmd, opts).Print(out, func(f *OutputFormatter) {
				f.Printf("selpkm %s (schema %d)\n", out.Version, out.SchemaVersion)
			})
		},
	}
}

func latestSchemaVersion() int {
	migrations := storage.Migrations()
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].ID
}

package version

import (
	"fmt"

	"github.com/buildmon/cli/internal/version"
	"github.com/buildmon/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

func NewCmdVersion(f *factory.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the CLI being used",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Format(f.Version))
		},
	}
}

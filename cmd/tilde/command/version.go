package command

import (
	"fmt"

	"github.com/owenthereal/tilde/internal/version"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.OutOrStdout(), version.Banner())
			return err
		},
	}

	return cmd
}

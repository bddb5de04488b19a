package cmd

import (
	"fmt"
	"strings"

	"db-migcheck/internal/catalog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Connect to source and target and print their versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, _, closeAll, err := openSides(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		defer closeAll()

		for _, side := range []*catalog.Side{source, target} {
			v, err := side.Version(cmd.Context())
			if err != nil {
				return err
			}
			// Oracle and SQL Server versions span several lines
			v, _, _ = strings.Cut(v, "\n")
			fmt.Fprintf(cmd.OutOrStdout(), "🦅 %-6s %-10s %s\n", side.Role, side.Dialect.Name(), v)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pingCmd)
}

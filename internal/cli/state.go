package cli

import (
	"github.com/spf13/cobra"
)

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result State
			if err := client.Get(cmd.Context(), "/api/v1/state", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show players, scores, mode and delays",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Info
			if err := client.Get(cmd.Context(), "/api/v1/info", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

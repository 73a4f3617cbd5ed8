package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/codechallenge-go/internal/model"
)

func newModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "mode <practice|gating|competition>",
		Short:     "Change the game mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.ModePractice), string(model.ModeGating), string(model.ModeCompetition)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseGameMode(args[0])
			if err != nil {
				return err
			}
			if err := client.Put(cmd.Context(), "/api/v1/mode", map[string]string{"mode": string(mode)}, nil); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Mode set to %s", mode))
			return nil
		},
	}
}

func newDelayCmd() *cobra.Command {
	var turn, win string

	cmd := &cobra.Command{
		Use:   "delay",
		Short: "Change the pacing delays",
		Long: `Change the delay before each turn and the pause after a game ends.
Values are durations such as 200ms or 1s.`,
		Example: "  ccgame delay --turn 100ms --win 2s",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{}
			if cmd.Flags().Changed("turn") {
				body["turn_delay"] = turn
			}
			if cmd.Flags().Changed("win") {
				body["win_delay"] = win
			}
			if len(body) == 0 {
				return errors.New("set --turn and/or --win")
			}
			if err := client.Put(cmd.Context(), "/api/v1/delays", body, nil); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Delays updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&turn, "turn", "", "Delay before each turn")
	cmd.Flags().StringVar(&win, "win", "", "Pause after a game ends")
	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon the current game and start a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(cmd.Context(), "/api/v1/reset", nil, nil); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game reset")
			return nil
		},
	}
}

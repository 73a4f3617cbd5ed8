package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/codechallenge-go/internal/dependencies/random"
	"github.com/mcoot/codechallenge-go/internal/engine/gomoku"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/services/bot"
	"github.com/mcoot/codechallenge-go/internal/transport"
)

func newPlayCmd() *cobra.Command {
	var name, password, game string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Connect as a player and make random moves",
		Long: `Connect to the player port over TCP, or WebSocket when --player-addr
starts with ws://, log in, and answer every turn with a random legal move.`,
		Example: "  ccgame play --name alice --password secret --game gomoku",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			strategy, err := bot.StrategyFor(game, random.New())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			stream, err := transport.Dial(cmd.Context(), cfg.PlayerAddr)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", cfg.PlayerAddr, err)
			}
			defer func() { _ = stream.Close() }()

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			player := bot.NewPlayer(name, password, strategy, logger)
			player.OnGameOver = func(reason string) {
				out.PrintMessage("Game over: " + reason)
			}

			err = player.Play(cmd.Context(), stream)
			if errors.Is(err, model.ErrConnectionClosed) || cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name")
	cmd.Flags().StringVar(&password, "password", "", "Player password")
	cmd.Flags().StringVar(&game, "game", gomoku.Kind, "Game the server runs (gomoku, counter)")
	return cmd
}

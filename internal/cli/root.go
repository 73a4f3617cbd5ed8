package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "ccgame",
		Short: "CLI tool for the game server",
		Long: `ccgame is a CLI tool for the turn-based game server.

It reads state and scores, changes the mode and pacing through the admin API,
streams live events, follows Redis-published state, and can join a game as a
random-move player.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CCGAME_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Admin token (env: CCGAME_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerAddr, "player-addr", cfg.PlayerAddr, "Player port address (env: CCGAME_PLAYER_ADDR)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for watch (env: CCGAME_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newModeCmd())
	rootCmd.AddCommand(newDelayCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command with args until ctx is cancelled
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

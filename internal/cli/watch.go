package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/codechallenge-go/internal/storage/redis"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow game state published to Redis",
		Long: `Subscribe to the snapshot channel of a Redis-backed server and print
each state as it is published. Does not need the HTTP API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rcfg := redis.DefaultConfig()
			rcfg.URL = cfg.RedisURL
			store, err := redis.New(rcfg)
			if err != nil {
				return fmt.Errorf("connect to redis: %w", err)
			}
			defer func() { _ = store.Close() }()

			snaps, err := store.SubscribeSnapshots(cmd.Context())
			if err != nil {
				return fmt.Errorf("subscribe: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			for snap := range snaps {
				out.Print(State{Kind: snap.Kind, Data: snap.Data})
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xanke/disney-sns/internal/cache"
	"github.com/xanke/disney-sns/internal/notifications"
)

var watchUser uint

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print activity events as they are published",
	Long: `Subscribes to the activity channels in Redis and prints every view and
like as it is recorded. Only authors with the activity_push flag on publish.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cache.InitRedis(cfg.RedisURL)
		rdb := cache.GetClient()
		if rdb == nil {
			return errors.New("redis is not reachable")
		}
		defer func() { _ = rdb.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		err = notifications.NewNotifier(rdb).SubscribeActivity(ctx, watchUser,
			func(authorID uint, msg notifications.ActivityMessage) {
				actor := "anonymous"
				if msg.ActorID != nil {
					actor = fmt.Sprintf("%s (#%d)", msg.ActorName, *msg.ActorID)
				}
				fmt.Fprintf(out, "%s author=%d %s %s %d by %s\n",
					msg.At.Format(time.RFC3339), authorID, msg.Kind, msg.TargetType, msg.TargetID, actor)
			})
		if err != nil {
			return err
		}

		<-ctx.Done()
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	},
}

func init() {
	watchCmd.Flags().UintVar(&watchUser, "user", 0, "Only this author's activity (0 = everyone)")
	rootCmd.AddCommand(watchCmd)
}

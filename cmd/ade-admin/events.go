package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	commonredis "github.com/brandonbohn/adebackend/common/redis"

	"github.com/spf13/cobra"
)

func eventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the ade-data event stream",
	}
	cmd.AddCommand(eventsTailCmd(a))
	return cmd
}

type tailOptions struct {
	group    string
	consumer string
	count    int64
	block    time.Duration
	once     bool
}

func eventsTailCmd(a *app) *cobra.Command {
	opts := tailOptions{}
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow the event stream as a consumer group member",
		Long: `Read events through a Redis consumer group, print one JSON line per
event, and acknowledge it. Entries already acknowledged by the group are
not shown again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.openRedis(cmd.Context())
			if err != nil {
				return err
			}
			if client == nil {
				return errors.New("redis is disabled (REDIS_ENABLED=false)")
			}
			defer commonredis.Close(client)
			return tailEvents(cmd.Context(), client, a.cfg.Events.Stream, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.group, "group", "ade-admin", "consumer group")
	cmd.Flags().StringVar(&opts.consumer, "consumer", "cli", "consumer name within the group")
	cmd.Flags().Int64Var(&opts.count, "count", 50, "max entries per read")
	cmd.Flags().DurationVar(&opts.block, "block", 5*time.Second, "how long each read waits for new entries")
	cmd.Flags().BoolVar(&opts.once, "once", false, "drain what is available and exit")
	return cmd
}

// eventLine printed form of one stream entry
type eventLine struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func tailEvents(ctx context.Context, client *commonredis.Client, stream string, opts tailOptions, out io.Writer) error {
	if err := commonredis.CreateConsumerGroup(ctx, client, stream, opts.group); err != nil {
		return err
	}
	block := opts.block
	if opts.once {
		block = -1
	}
	enc := json.NewEncoder(out)
	for {
		msgs, err := commonredis.ReadFromStream(ctx, client, stream, opts.group, opts.consumer, opts.count, block)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read %s: %w", stream, err)
		}
		ids := make([]string, 0, len(msgs))
		for _, m := range msgs {
			line := eventLine{ID: m.ID}
			line.Type, _ = m.Values["type"].(string)
			line.Timestamp, _ = m.Values["timestamp"].(string)
			if data, ok := m.Values["data"].(string); ok && json.Valid([]byte(data)) {
				line.Data = json.RawMessage(data)
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
			ids = append(ids, m.ID)
		}
		if err := commonredis.Ack(ctx, client, stream, opts.group, ids...); err != nil {
			return fmt.Errorf("failed to ack %s: %w", stream, err)
		}
		if opts.once && len(msgs) == 0 {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

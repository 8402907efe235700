package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/events"
)

var (
	watchNATSURL string
	watchTopic   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream server events from NATS",
	Long: `Subscribe to the event stream the server publishes over NATS and print
each event payload as a line of JSON. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := watchNATSURL
		if url == "" {
			url = os.Getenv("TODOGRAPH_NATS_URL")
		}
		if url == "" {
			return fmt.Errorf("no NATS server configured: pass --nats-url or set TODOGRAPH_NATS_URL")
		}

		sub, err := events.NewNATSSubscriber(url,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(watchTopic)
		if err != nil {
			return err
		}
		defer cancel()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return streamEvents(ctx, ch, os.Stdout)
	},
}

// streamEvents copies event payloads to w one per line until the channel
// closes or ctx is done.
func streamEvents(ctx context.Context, ch <-chan []byte, w io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintln(w, string(payload)); err != nil {
				return err
			}
		}
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchNATSURL, "nats-url", "", "NATS server URL (default TODOGRAPH_NATS_URL)")
	watchCmd.Flags().StringVar(&watchTopic, "topic", "todograph.>", "subject to subscribe to (NATS wildcards allowed)")
}

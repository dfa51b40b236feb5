package waterlink

import (
	"context"
	"log"

	"waterlink/pkg/retrylimit"
)

// Supervise keeps the node session alive for the lifetime of ctx: it runs
// Connect, waits for the decode loop to report the socket dead, and
// reconnects with exponential backoff. A failed handshake counts as a dead
// session and is retried the same way.
//
// Supervise blocks; run it on its own goroutine. It returns ctx.Err once
// ctx is cancelled, after closing the socket.
func (c *Connection) Supervise(ctx context.Context, password, wsURL, restURL string) error {
	backoff := retrylimit.Backoff{Initial: c.ReconnectBackoff, Max: c.MaxReconnectBackoff}

	for {
		err := c.Connect(ctx, password, wsURL, restURL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[Waterlink] connect failed: %v", err)
		} else {
			backoff.Reset()
			select {
			case <-c.disconnected():
			case <-ctx.Done():
				c.Close()
				return ctx.Err()
			}
			log.Printf("[Waterlink] node session lost, reconnecting")
		}

		if err := backoff.Sleep(ctx); err != nil {
			c.Close()
			return err
		}
	}
}

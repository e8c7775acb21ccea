package solana

import "context"

// WSClient defines the Solana WebSocket subscription interface.
type WSClient interface {
	// SubscribeLogs subscribes to logs mentioning the given program.
	SubscribeLogs(ctx context.Context, program string) (<-chan LogNotification, error)

	// Close closes the WebSocket connection.
	Close() error
}

// LogNotification represents one logs subscription message.
type LogNotification struct {
	Signature string
	Slot      int64
	Logs      []string
	Err       interface{}
}

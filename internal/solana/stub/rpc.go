// Package stub provides in-memory solana client fakes for tests.
package stub

import (
	"context"
	"sync/atomic"

	"pump-swap-ingestor/internal/solana"
)

// RPCClient implements solana.RPCClient for testing.
type RPCClient struct {
	Accounts map[string]*solana.AccountInfo
	Err      error

	// Calls counts GetAccountInfo invocations, useful for asserting
	// cache behavior.
	Calls atomic.Int64
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Accounts: make(map[string]*solana.AccountInfo),
	}
}

// GetAccountInfo returns the stubbed account, or nil when absent.
func (c *RPCClient) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	c.Calls.Add(1)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Accounts[pubkey], nil
}

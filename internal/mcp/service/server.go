// Package service hosts the MCP server that exposes the die-rolling solver
// to MCP clients over stdio.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Die Agony MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

// TransportStdio uses standard input/output for MCP.
const TransportStdio TransportKind = "stdio"

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
}

// NewServer builds the MCP server with the solver tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, SolveTool(), SolveHandler())
	mcp.AddTool(server, DescribeBoardTool(), DescribeBoardHandler())
	return server
}

// Run serves MCP over the configured transport and blocks until the context
// ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return serveWithTransport(ctx, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server using the provided transport.
// Context cancellation is the expected shutdown path, not a serve failure.
func serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if ctx == nil {
		ctx = context.Background()
	}
	err := NewServer(serverVersion).Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

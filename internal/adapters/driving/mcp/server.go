package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cdcx/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds how long RunHTTP waits for open requests on exit.
const shutdownTimeout = 5 * time.Second

// Server exposes cdcx records and summaries to MCP clients.
type Server struct {
	ports        *Ports
	server       *mcp.Server
	instructions string
}

// NewServer creates a server over the given ports. Summary and Records are
// required; import_pdf is only offered when Import is set.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingSummaryService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:        ports,
		instructions: instructions(ports),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "cdcx",
		Title:   "CDC dividend records",
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions: s.instructions,
	})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions tells clients what the server holds and which tools to use.
func instructions(ports *Ports) string {
	var b strings.Builder
	b.WriteString("cdcx holds dividend records imported from CDC \"Dividend / Zakat and Tax Deduction Report\" statements. ")
	b.WriteString("Amounts are in rupees as decimal strings; dates are dd/mm/yyyy.\n")
	b.WriteString("- summary: gross, tax, joint-holder tax, zakat and net per symbol, optionally filtered by symbol and payment date.\n")
	b.WriteString("- list_records: individual rows in import order.\n")
	if ports.Import != nil {
		b.WriteString("- import_pdf: extract and store the rows of a statement PDF on this machine. Importing the same file twice stores it twice.\n")
	}
	b.WriteString("Resources: cdcx://summary, cdcx://records and cdcx://symbols/{symbol}/records.")
	return b.String()
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("mcp: serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("mcp: serving on http://%s", addr)
	err := httpServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("mcp: shutdown: %w", err)
	}
	return nil
}

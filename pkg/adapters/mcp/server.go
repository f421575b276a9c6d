// Package mcp exposes a query engine as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/michal-shasha/bayesnet"
	"github.com/michal-shasha/bayesnet/internal/presentation/graph"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

const (
	networkURI = "bayesnet://network"
	mermaidURI = "bayesnet://network/mermaid"
)

// ProbabilityAnswer is the structured result of answer_query.
type ProbabilityAnswer struct {
	Query           string  `json:"query" jsonschema_description:"The query in canonical syntax"`
	Probability     float64 `json:"probability" jsonschema_description:"P(query | evidence), rounded to five decimals"`
	Additions       int     `json:"additions" jsonschema_description:"Additions performed by variable elimination"`
	Multiplications int     `json:"multiplications" jsonschema_description:"Multiplications performed by variable elimination"`
}

// IndependenceAnswer is the structured result of are_independent.
type IndependenceAnswer struct {
	Query       string `json:"query" jsonschema_description:"The query in canonical syntax"`
	Independent bool   `json:"independent" jsonschema_description:"True if the variables are d-separated given the evidence"`
}

type probabilityArgs struct {
	Text                    string `mapstructure:"query"`
	domain.ProbabilityQuery `mapstructure:",squash"`
}

type independenceArgs struct {
	Text                     string `mapstructure:"query"`
	domain.IndependenceQuery `mapstructure:",squash"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.QueryEngine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.QueryEngine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("bayesnet-mcp", bayesnet.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	answerTool := mcp.NewTool("answer_query",
		mcp.WithDescription("Compute P(variable=value | evidence) by variable elimination. "+
			"Give either 'query' in the form \"P(B=T|J=T,M=T) A-E\" or the structured fields."),
		mcp.WithString("query", mcp.Description("Query text, e.g. P(B=T|J=T,M=T) A-E")),
		mcp.WithString("variable", mcp.Description("Query variable")),
		mcp.WithString("value", mcp.Description("Outcome of the query variable")),
		mcp.WithObject("evidence", mcp.Description("Observed variables mapped to their outcomes")),
		mcp.WithArray("order", mcp.Description("Hidden variables in elimination order"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithOutputSchema[ProbabilityAnswer](),
	)
	s.mcpServer.AddTool(answerTool, mcp.NewStructuredToolHandler(s.handleAnswerQuery))

	indepTool := mcp.NewTool("are_independent",
		mcp.WithDescription("Decide whether two variables are conditionally independent given evidence. "+
			"Give either 'query' in the form \"B-E|J=T\" or the structured fields."),
		mcp.WithString("query", mcp.Description("Query text, e.g. B-E|J=T")),
		mcp.WithString("a", mcp.Description("First variable")),
		mcp.WithString("b", mcp.Description("Second variable")),
		mcp.WithObject("evidence", mcp.Description("Observed variables mapped to their outcomes")),
		mcp.WithOutputSchema[IndependenceAnswer](),
	)
	s.mcpServer.AddTool(indepTool, mcp.NewStructuredToolHandler(s.handleAreIndependent))

	s.mcpServer.AddTool(mcp.NewTool("get_network",
		mcp.WithDescription("Get the full network definition: variables, outcomes, parents and tables."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := s.networkJSON()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleAnswerQuery(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ProbabilityAnswer, error) {
	var in probabilityArgs
	if err := decodeArgs(args, &in); err != nil {
		return ProbabilityAnswer{}, err
	}

	q := in.ProbabilityQuery
	if in.Text != "" {
		parsed, err := query.ParseProbability(in.Text)
		if err != nil {
			return ProbabilityAnswer{}, err
		}
		q = parsed
	}
	if q.Variable == "" || q.Value == "" {
		return ProbabilityAnswer{}, errors.New("either query or variable and value are required")
	}

	res, err := s.engine.Query(ctx, q)
	if err == nil {
		err = res.Check()
	}
	if err != nil {
		s.logger.Warn("MCP answer_query failed", "query", q.String(), "error", err)
		return ProbabilityAnswer{}, err
	}
	return ProbabilityAnswer{
		Query:           q.String(),
		Probability:     res.Probability,
		Additions:       res.Additions,
		Multiplications: res.Multiplications,
	}, nil
}

func (s *Server) handleAreIndependent(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (IndependenceAnswer, error) {
	var in independenceArgs
	if err := decodeArgs(args, &in); err != nil {
		return IndependenceAnswer{}, err
	}

	q := in.IndependenceQuery
	if in.Text != "" {
		parsed, err := query.ParseIndependence(in.Text)
		if err != nil {
			return IndependenceAnswer{}, err
		}
		q = parsed
	}
	if q.A == "" || q.B == "" {
		return IndependenceAnswer{}, errors.New("either query or a and b are required")
	}

	independent, err := s.engine.Independent(ctx, q)
	if err != nil {
		s.logger.Warn("MCP are_independent failed", "query", q.String(), "error", err)
		return IndependenceAnswer{}, err
	}
	return IndependenceAnswer{Query: q.String(), Independent: independent}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(networkURI, "Network Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := s.networkJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      networkURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(mermaidURI, "Network Diagram",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      mermaidURI,
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(s.engine.Network(), nil),
			},
		}, nil
	})
}

func (s *Server) networkJSON() ([]byte, error) {
	net := s.engine.Network()
	data, err := json.Marshal(struct {
		Name      string              `json:"name"`
		Variables []domain.Definition `json:"variables"`
	}{net.Name(), net.Definitions()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode network: %w", err)
	}
	return data, nil
}

// decodeArgs maps loosely typed tool arguments onto a query struct.
// Unknown keys are rejected so typos in argument names surface as errors.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

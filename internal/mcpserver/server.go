// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Stride tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jfenske89/stride/internal/coach"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/storage"
)

// Server wraps the MCP server with Stride tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *coach.Service
	store storage.Provider
}

// New creates a new MCP server with all Stride tools registered.
func New(svc *coach.Service, store storage.Provider) *Server {
	s := &Server{svc: svc, store: store}

	s.mcp = server.NewMCPServer(
		"Stride",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_records",
		mcp.WithDescription("Full-text search through coaching records (profiles, challenges, agents, contracts)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchRecords)

	s.mcp.AddTool(mcp.NewTool("read_record",
		mcp.WithDescription("Read the raw content of a record file by its data-root-relative path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path (e.g. challenges/<id>/challenge.md)")),
	), s.readRecord)

	s.mcp.AddTool(mcp.NewTool("list_challenges",
		mcp.WithDescription("List all challenges with status, progress, and streaks."),
	), s.listChallenges)

	s.mcp.AddTool(mcp.NewTool("get_challenge_status",
		mcp.WithDescription("Get one challenge's status, progress, streak, and milestones."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Challenge id")),
	), s.getChallengeStatus)

	s.mcp.AddTool(mcp.NewTool("log_activity",
		mcp.WithDescription("Append an entry to a challenge's activity log. "+
			"Records MUST follow the canonical record format; read the contract first via "+
			"the get_record_contract tool or the stride://record-format resource."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Challenge id")),
		mcp.WithString("action", mcp.Required(), mcp.Description("Short action headline")),
		mcp.WithString("description", mcp.Description("Optional longer description")),
		mcp.WithString("type", mcp.Description("Entry type: check_in, milestone, status_change, note, or system (default note)")),
	), s.logActivity)

	s.mcp.AddTool(mcp.NewTool("get_record_contract",
		mcp.WithDescription("Returns the canonical Stride record format contract. "+
			"Call this before writing record content to ensure correct structure."),
	), s.getRecordContract)

	s.mcp.AddTool(mcp.NewTool("rebuild_agent_registry",
		mcp.WithDescription("Rebuild agents.json from the per-agent files after manual edits."),
	), s.rebuildAgentRegistry)

	// Resource: record format contract.
	s.mcp.AddResource(
		mcp.NewResource("stride://record-format", "Record Format Contract",
			mcp.WithResourceDescription("Canonical markdown record format that all records follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listChallenges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	challenges, err := s.svc.ListChallenges(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(challenges, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getChallengeStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.svc.GetChallenge(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("challenge not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(c, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) logActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry := models.ActivityEntry{Action: action}
	if v, dErr := req.RequireString("description"); dErr == nil {
		entry.Description = v
	}
	if v, tErr := req.RequireString("type"); tErr == nil {
		entry.Type = v
	}
	e, err := s.svc.AppendActivity(ctx, id, entry)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("logged: %s (%s)", e.Action, e.ID)), nil
}

func (s *Server) getRecordContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecordFormatContract), nil
}

func (s *Server) rebuildAgentRegistry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.svc.RebuildAgentRegistry(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("registry rebuilt: %d agents", n)), nil
}

func (s *Server) readRecordFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "stride://record-format",
			MIMEType: "text/markdown",
			Text:     RecordFormatContract,
		},
	}, nil
}

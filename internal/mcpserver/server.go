// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the techhub catalog to LLM clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/filter"
	"github.com/starford/techhub/internal/index"
	"github.com/starford/techhub/internal/models"
)

// QueryGuideURI identifies the query guide resource.
const QueryGuideURI = "techhub://query-guide"

const defaultSearchLimit = 20

// Searcher answers cross-collection queries.
type Searcher interface {
	Search(query string, limit int) ([]index.Hit, error)
}

// Server wraps the MCP server with techhub tools.
type Server struct {
	mcp      *server.MCPServer
	store    *catalog.Store
	search   Searcher
	handlers map[string]server.ToolHandlerFunc
}

// New creates an MCP server with every techhub tool registered.
func New(store *catalog.Store, search Searcher, version string) *Server {
	s := &Server{store: store, search: search, handlers: map[string]server.ToolHandlerFunc{}}

	s.mcp = server.NewMCPServer(
		"techhub",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.addList("list_articles", "List technical articles.", catalog.ViewArticles, listOf(catalog.ViewArticles, store.Articles))
	s.addList("list_issues", "List technical issues with their solutions.", catalog.ViewIssues, listOf(catalog.ViewIssues, store.Issues))
	s.addList("list_documents", "List uploaded documents.", catalog.ViewDocuments, listOf(catalog.ViewDocuments, store.Documents))
	s.addList("list_events", "List timeline events, most recent first.", catalog.ViewEvents, listOf(catalog.ViewEvents, store.Events))

	s.add(mcp.NewTool("get_record",
		mcp.WithDescription("Fetch one record by collection kind and id."),
		mcp.WithString("kind", mcp.Required(),
			mcp.Enum(models.Strings(models.Kinds)...),
			mcp.Description("Record kind")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.getRecord)

	s.add(mcp.NewTool("get_facets",
		mcp.WithDescription("List the selectable values of every facet of a view."),
		mcp.WithString("view", mcp.Required(),
			mcp.Enum(viewNames()...),
			mcp.Description("View name")),
	), s.getFacets)

	s.add(mcp.NewTool("search",
		mcp.WithDescription("Full-text search across all collections."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of hits (default 20)")),
	), s.searchAll)

	s.add(mcp.NewTool("get_query_guide",
		mcp.WithDescription("Explain how list tool arguments filter records. "+
			"Also available as the "+QueryGuideURI+" resource."),
	), s.getQueryGuide)

	s.mcp.AddResource(
		mcp.NewResource(QueryGuideURI, "Query Guide",
			mcp.WithResourceDescription("Facet and search semantics of the techhub list tools."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readQueryGuide,
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

func (s *Server) add(tool mcp.Tool, h server.ToolHandlerFunc) {
	s.handlers[tool.Name] = h
	s.mcp.AddTool(tool, h)
}

func (s *Server) addList(name, desc string, v catalog.View, h server.ToolHandlerFunc) {
	opts := []mcp.ToolOption{
		mcp.WithDescription(desc + " See get_query_guide for filter semantics."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring to search for")),
	}
	for _, f := range v.FacetNames() {
		opts = append(opts, mcp.WithString(f, mcp.Description("Comma-separated "+f+" values")))
	}
	s.add(mcp.NewTool(name, opts...), h)
}

func listOf[T any](v catalog.View, run func(filter.Criteria) []T) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := map[string][]string{}
		for _, f := range v.FacetNames() {
			if val := req.GetString(f, ""); val != "" {
				raw[f] = []string{val}
			}
		}
		items := run(v.Criteria(req.GetString("query", ""), raw))
		return jsonResult(map[string]any{"items": items, "total": len(items)})
	}
}

func (s *Server) getRecord(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var rec any
	switch models.Kind(kind) {
	case models.KindArticle:
		rec, err = s.store.Article(id)
	case models.KindIssue:
		rec, err = s.store.Issue(id)
	case models.KindDocument:
		rec, err = s.store.Document(id)
	case models.KindEvent:
		rec, err = s.store.Event(id)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s", kind)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s %s", kind, id)), nil
	}
	return jsonResult(rec)
}

func (s *Server) getFacets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("view")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := catalog.ParseView(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	facets, err := s.store.Facets(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(facets)
}

func (s *Server) searchAll(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.search.Search(query, req.GetInt("limit", defaultSearchLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(hits)
}

func (s *Server) getQueryGuide(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(QueryGuide), nil
}

func (s *Server) readQueryGuide(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      QueryGuideURI,
			MIMEType: "text/markdown",
			Text:     QueryGuide,
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

func viewNames() []string {
	out := make([]string, len(catalog.Views))
	for i, v := range catalog.Views {
		out[i] = string(v)
	}
	return out
}

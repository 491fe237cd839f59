package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/claimdesk/internal/documents"
	"github.com/ziadkadry99/claimdesk/internal/justify"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

func (s *Server) handleProcessQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	resp := s.processor.ProcessQuery(ctx, query, request.GetString("session_id", ""))
	return jsonResult(resp)
}

func (s *Server) handleSearchPolicyChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	topK := request.GetInt("top_k", retrieval.DefaultTopK)
	if topK <= 0 {
		topK = retrieval.DefaultTopK
	}

	matches := s.processor.SearchSimilarChunks(query, topK)
	if len(matches) == 0 {
		return mcp.NewToolResultText("No matching policy passages. Run `claimdesk ingest` to load policy documents."), nil
	}
	return mcp.NewToolResultText(formatMatches(matches)), nil
}

func (s *Server) handleAssessClaim(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	return jsonResult(s.processor.Assess(query))
}

func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.documents == nil {
		summaries := s.processor.DocumentSummaries()
		if len(summaries) == 0 {
			return mcp.NewToolResultText("No documents ingested."), nil
		}
		return jsonResult(summaries)
	}

	docs, err := s.documents.Find(ctx, documents.Filter{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText("No documents ingested."), nil
	}
	return jsonResult(docs)
}

func (s *Server) handleGetProcessorConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.processor.Info())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// formatMatches renders search results as plain text for agents.
func formatMatches(matches []retrieval.Match) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d passage(s):\n", len(matches)))

	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Document: %s (chunk %d)\n", m.Document, m.ChunkIndex))
		sb.WriteString(fmt.Sprintf("Similarity: %.2f\n\n", m.Similarity))
		sb.WriteString(justify.Excerpt(m.Text))
		sb.WriteString("\n")
	}

	return sb.String()
}

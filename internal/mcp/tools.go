package mcp

import "github.com/mark3labs/mcp-go/mcp"

var processQueryTool = mcp.NewTool("process_query",
	mcp.WithDescription("Evaluate an insurance claim described in plain language. Returns the decision, payable amount, justification, confidence and referenced policy clauses."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Claim description, e.g. \"46-year-old male, knee surgery in Pune, 3-month-old policy\""),
	),
	mcp.WithString("session_id",
		mcp.Description("Session to record the query under; a new one is created when empty"),
	),
)

var searchPolicyChunksTool = mcp.NewTool("search_policy_chunks",
	mcp.WithDescription("Find the policy document passages most similar to a query."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search text"),
	),
	mcp.WithNumber("top_k",
		mcp.Description("Maximum number of passages to return (default 5)"),
	),
)

var assessClaimTool = mcp.NewTool("assess_claim",
	mcp.WithDescription("Produce an advisory estimate for a claim using the extended rule set (age bands, city and context multipliers). Not a binding decision."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Claim description"),
	),
)

var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List ingested policy documents with their chunk counts and extracted policy information."),
)

var getProcessorConfigTool = mcp.NewTool("get_processor_config",
	mcp.WithDescription("Show the active decision rules, procedure table and document summaries."),
)

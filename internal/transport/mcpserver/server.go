// Package mcpserver exposes the read-only analytics queries as MCP tools.
package mcpserver

import (
	"context"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"surety/internal/config"
	"surety/internal/domain/analytics"
	"surety/pkg/logger"
)

const (
	toolListMembers      = "list-members"
	toolGetMember        = "get-member"
	toolListPolicies     = "list-policies"
	toolGetPolicy        = "get-policy"
	toolListAssets       = "list-assets"
	toolCoverageAnalysis = "coverage-analysis"
	toolRenewalOverview  = "renewal-overview"
	toolDashboardSummary = "dashboard-summary"
)

const instructions = "Read-only access to a family's insurance records: members, policies, insured assets, " +
	"coverage totals, upcoming renewals and a dashboard summary. Identity documents and payment accounts are never returned."

type Queries interface {
	ListMembers(ctx context.Context) ([]analytics.MemberSummary, error)
	MemberDetail(ctx context.Context, memberID int64) (*analytics.MemberDetail, error)
	ListPolicies(ctx context.Context, filter analytics.PolicyFilter) ([]analytics.PolicySummary, error)
	PolicyDetail(ctx context.Context, policyID int64) (*analytics.PolicyDetail, error)
	ListAssets(ctx context.Context) ([]analytics.AssetView, error)
	Coverage(ctx context.Context, target string, id int64) (any, error)
	RenewalOverview(ctx context.Context, months int) (*analytics.RenewalOverview, error)
	DashboardSummary(ctx context.Context) (*analytics.DashboardSummary, error)
}

type server struct {
	queries Queries
	guard   *Guard
	log     logger.Logger
}

// New builds an MCP server with every tool registered. Each tool call
// passes through guard before touching data.
func New(cfg config.MCPConfig, queries Queries, guard *Guard, log logger.Logger) *mcpsdk.Server {
	s := &server{queries: queries, guard: guard, log: log.With("component", "mcp")}

	srv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &mcpsdk.ServerOptions{
		Instructions: instructions,
	})
	s.registerTools(srv)
	return srv
}

// HTTPHandler serves srv over the streamable HTTP transport.
func HTTPHandler(srv *mcpsdk.Server) http.Handler {
	return mcpsdk.NewStreamableHTTPHandler(func(_ *http.Request) *mcpsdk.Server {
		return srv
	}, nil)
}

// ServeStdio blocks serving srv on stdin/stdout until ctx is done or the
// client disconnects.
func ServeStdio(ctx context.Context, srv *mcpsdk.Server) error {
	return srv.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *server) registerTools(srv *mcpsdk.Server) {
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolListMembers,
		Description: "List all family members with their basic information",
	}, guarded(s, toolListMembers, s.listMembers))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetMember,
		Description: "Get detailed information about a specific family member, including their policies",
	}, guarded(s, toolGetMember, s.getMember))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolListPolicies,
		Description: "List all insurance policies with optional filters for status, category, or member",
	}, guarded(s, toolListPolicies, s.listPolicies))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetPolicy,
		Description: "Get full details of a policy including beneficiaries and coverage items",
	}, guarded(s, toolGetPolicy, s.getPolicy))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolListAssets,
		Description: "List all insured assets (real estate, vehicles) with owner information",
	}, guarded(s, toolListAssets, s.listAssets))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolCoverageAnalysis,
		Description: "Analyze insurance coverage for a specific family member or asset",
	}, guarded(s, toolCoverageAnalysis, s.coverageAnalysis))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolRenewalOverview,
		Description: "Get an overview of upcoming policy renewals and due dates within the next 1 to 120 months (default 12)",
	}, guarded(s, toolRenewalOverview, s.renewalOverview))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolDashboardSummary,
		Description: "Get a summary of the family insurance dashboard including key statistics",
	}, guarded(s, toolDashboardSummary, s.dashboardSummary))
}

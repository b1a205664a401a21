package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"surety/internal/domain/analytics"
	"surety/internal/domain/assets"
	"surety/internal/domain/members"
	"surety/internal/domain/policies"
)

type emptyInput struct{}

type getMemberInput struct {
	MemberID int64 `json:"memberId" jsonschema:"The member ID to look up"`
}

type listPoliciesInput struct {
	Status   string `json:"status,omitempty" jsonschema:"Filter by policy status: Active, Lapsed, Surrendered or Claimed"`
	Category string `json:"category,omitempty" jsonschema:"Filter by policy category: Life, CriticalIllness, Medical, Accident, Annuity or Property"`
	MemberID *int64 `json:"memberId,omitempty" jsonschema:"Filter by insured member or applicant ID"`
}

type getPolicyInput struct {
	PolicyID int64 `json:"policyId" jsonschema:"The policy ID to look up"`
}

type coverageInput struct {
	Type string `json:"type" jsonschema:"Whether to analyze a member or asset"`
	ID   int64  `json:"id" jsonschema:"The member or asset ID"`
}

type renewalInput struct {
	Months int `json:"months,omitempty" jsonschema:"Number of months to look ahead, between 1 and 120 (default: 12)"`
}

// userError carries text that is safe to return to the client as is.
type userError struct {
	message string
}

func (e *userError) Error() string {
	return e.message
}

func notFound(kind string, id int64) error {
	return &userError{message: fmt.Sprintf("%s with id %d not found", kind, id)}
}

type toolFunc[In any] func(ctx context.Context, input In) (any, error)

func guarded[In any](s *server, name string, fn toolFunc[In]) mcpsdk.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, any, error) {
		enabled, err := s.guard.Enabled(ctx)
		if err != nil {
			s.log.InternalError("mcp.guard: read setting failed", err, "tool", name)
			return errorResult("Failed to check MCP access setting"), nil, nil
		}
		if !enabled {
			s.log.Debug("mcp: call rejected, access disabled", "tool", name)
			return errorResult(s.guard.DisabledMessage()), nil, nil
		}

		value, err := fn(ctx, input)
		if err != nil {
			return s.failure(name, err), nil, nil
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			s.log.InternalError("mcp."+name+": encode result failed", err)
			return errorResult("Failed to encode result"), nil, nil
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(encoded)}},
		}, nil, nil
	}
}

func (s *server) failure(name string, err error) *mcpsdk.CallToolResult {
	var user *userError
	switch {
	case errors.As(err, &user):
		s.log.BusinessError("mcp."+name+": "+user.message, err)
		return errorResult(user.message)
	case errors.Is(err, analytics.ErrInvalidFilter),
		errors.Is(err, analytics.ErrInvalidTarget),
		errors.Is(err, analytics.ErrInvalidMonths):
		s.log.BusinessError("mcp."+name+": invalid input", err)
		return errorResult(err.Error())
	default:
		s.log.InternalError("mcp."+name+": query failed", err)
		return errorResult("Internal error")
	}
}

func errorResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		IsError: true,
	}
}

func (s *server) listMembers(ctx context.Context, _ emptyInput) (any, error) {
	return s.queries.ListMembers(ctx)
}

func (s *server) getMember(ctx context.Context, input getMemberInput) (any, error) {
	detail, err := s.queries.MemberDetail(ctx, input.MemberID)
	if errors.Is(err, members.ErrMemberNotFound) {
		return nil, notFound("Member", input.MemberID)
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *server) listPolicies(ctx context.Context, input listPoliciesInput) (any, error) {
	return s.queries.ListPolicies(ctx, analytics.PolicyFilter{
		Status:   input.Status,
		Category: input.Category,
		MemberID: input.MemberID,
	})
}

func (s *server) getPolicy(ctx context.Context, input getPolicyInput) (any, error) {
	detail, err := s.queries.PolicyDetail(ctx, input.PolicyID)
	if errors.Is(err, policies.ErrPolicyNotFound) {
		return nil, notFound("Policy", input.PolicyID)
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *server) listAssets(ctx context.Context, _ emptyInput) (any, error) {
	return s.queries.ListAssets(ctx)
}

func (s *server) coverageAnalysis(ctx context.Context, input coverageInput) (any, error) {
	result, err := s.queries.Coverage(ctx, input.Type, input.ID)
	switch {
	case errors.Is(err, members.ErrMemberNotFound):
		return nil, notFound("Member", input.ID)
	case errors.Is(err, assets.ErrAssetNotFound):
		return nil, notFound("Asset", input.ID)
	case err != nil:
		return nil, err
	}
	return result, nil
}

func (s *server) renewalOverview(ctx context.Context, input renewalInput) (any, error) {
	return s.queries.RenewalOverview(ctx, input.Months)
}

func (s *server) dashboardSummary(ctx context.Context, _ emptyInput) (any, error) {
	return s.queries.DashboardSummary(ctx)
}

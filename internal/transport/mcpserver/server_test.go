package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"surety/internal/config"
	"surety/internal/db/dbtest"
	"surety/internal/domain/analytics"
	"surety/internal/domain/assets"
	"surety/internal/domain/members"
	"surety/internal/domain/policies"
	"surety/internal/domain/settings"
	assetsrepo "surety/internal/repository/sqlite/assets"
	insurersrepo "surety/internal/repository/sqlite/insurers"
	membersrepo "surety/internal/repository/sqlite/members"
	policiesrepo "surety/internal/repository/sqlite/policies"
	settingsrepo "surety/internal/repository/sqlite/settings"
	"surety/pkg/logger"
)

const settingsURL = "http://localhost:7015/settings"

type fixture struct {
	settings *settings.Service
	env      map[string]string
	session  *mcpsdk.ClientSession
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	conn := dbtest.Open(t)

	memberRepo := membersrepo.NewSQLite(conn)
	policyRepo := policiesrepo.NewSQLite(conn)
	assetRepo := assetsrepo.NewSQLite(conn)

	alice := &members.Member{Name: "Alice", Relation: members.RelationSelf}
	bob := &members.Member{Name: "Bob", Relation: members.RelationChild}
	require.NoError(t, memberRepo.CreateMember(ctx, alice))
	require.NoError(t, memberRepo.CreateMember(ctx, bob))

	card := "110101199001011234"
	alice.IDCard = &card
	require.NoError(t, memberRepo.UpdateMember(ctx, alice))

	require.NoError(t, assetRepo.CreateAsset(ctx, &assets.Asset{
		Type:       assets.TypeVehicle,
		Name:       "Family car",
		Identifier: "A12345",
		OwnerID:    &alice.ID,
	}))

	expired := "2020-01-01"
	require.NoError(t, policyRepo.CreatePolicy(ctx, &policies.Policy{
		ApplicantID:      alice.ID,
		InsuredType:      policies.InsuredTypeMember,
		InsuredMemberID:  &alice.ID,
		Category:         policies.CategoryLife,
		InsurerName:      "Ping An",
		ProductName:      "Term Life",
		PolicyNumber:     "L-001",
		SumAssured:       1000000,
		Premium:          3000,
		PaymentFrequency: policies.FrequencyYearly,
		EffectiveDate:    "2024-01-01",
		Status:           policies.StatusActive,
	}))
	require.NoError(t, policyRepo.CreatePolicy(ctx, &policies.Policy{
		ApplicantID:      alice.ID,
		InsuredType:      policies.InsuredTypeMember,
		InsuredMemberID:  &bob.ID,
		Category:         policies.CategoryMedical,
		InsurerName:      "AIA",
		ProductName:      "Kids Medical",
		PolicyNumber:     "M-001",
		SumAssured:       500000,
		Premium:          600,
		PaymentFrequency: policies.FrequencyYearly,
		EffectiveDate:    "2019-01-01",
		ExpiryDate:       &expired,
		Status:           policies.StatusActive,
	}))

	f := &fixture{
		settings: settings.NewService(settingsrepo.NewSQLite(conn)),
		env:      map[string]string{},
	}
	guard := NewGuard(f.settings, settingsURL)
	guard.getenv = func(key string) string { return f.env[key] }

	queries := analytics.NewService(memberRepo, policyRepo, assetRepo, insurersrepo.NewSQLite(conn))
	srv := New(config.MCPConfig{Name: "surety", Version: "test"}, queries, guard, logger.Discard())

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	t1, t2 := mcpsdk.NewInMemoryTransports()
	ss, err := srv.Connect(connectCtx, t1, nil)
	if err != nil {
		cancel()
		t.Fatalf("server connect: %v", err)
	}
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(connectCtx, t2, nil)
	if err != nil {
		_ = ss.Close()
		cancel()
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Close()
		cancel()
	})
	f.session = cs
	return f
}

func (f *fixture) enable(t *testing.T) {
	t.Helper()
	_, err := f.settings.SetSetting(context.Background(), settings.KeyMCPEnabled, "true")
	require.NoError(t, err)
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if args == nil {
		args = map[string]any{}
	}
	res, err := f.session.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func decode[T any](t *testing.T, text string) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal([]byte(text), &value))
	return value
}

func TestToolsDisabledByDefault(t *testing.T) {
	f := newFixture(t)

	for _, name := range []string{toolListMembers, toolListAssets, toolDashboardSummary} {
		text, isError := f.call(t, name, nil)
		assert.True(t, isError, name)
		assert.Contains(t, text, "MCP access is disabled")
		assert.Contains(t, text, settingsURL)
	}
}

func TestGuardPrecedence(t *testing.T) {
	f := newFixture(t)

	_, err := f.settings.SetSetting(context.Background(), settings.KeyMCPEnabled, "false")
	require.NoError(t, err)
	_, isError := f.call(t, toolListMembers, nil)
	assert.True(t, isError)

	f.env[EnvEnabled] = "true"
	_, isError = f.call(t, toolListMembers, nil)
	assert.False(t, isError)

	f.env[EnvEnabled] = "1"
	_, isError = f.call(t, toolListMembers, nil)
	assert.True(t, isError)

	f.enable(t)
	_, isError = f.call(t, toolListMembers, nil)
	assert.False(t, isError)
}

func TestListMembersHidesSensitiveFields(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolListMembers, nil)
	require.False(t, isError, text)

	list := decode[[]map[string]any](t, text)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice", list[0]["name"])
	for _, key := range []string{"idCard", "id_card", "createdAt", "created_at"} {
		assert.NotContains(t, list[0], key)
	}
	assert.NotContains(t, text, "110101199001011234")
}

func TestGetMemberRoles(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolGetMember, map[string]any{"memberId": 1})
	require.False(t, isError, text)

	detail := decode[analytics.MemberDetail](t, text)
	assert.Equal(t, "Alice", detail.Name)
	require.Len(t, detail.Policies, 2)
	roles := map[string]string{}
	for _, policy := range detail.Policies {
		roles[policy.PolicyNumber] = policy.Role
	}
	assert.Equal(t, analytics.RoleInsured, roles["L-001"])
	assert.Equal(t, analytics.RoleApplicant, roles["M-001"])

	text, isError = f.call(t, toolGetMember, map[string]any{"memberId": 99})
	assert.True(t, isError)
	assert.Equal(t, "Member with id 99 not found", text)
}

func TestListPoliciesFiltersOnDisplayStatus(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolListPolicies, map[string]any{"status": "Lapsed"})
	require.False(t, isError, text)

	list := decode[[]analytics.PolicySummary](t, text)
	require.Len(t, list, 1)
	assert.Equal(t, "M-001", list[0].PolicyNumber)
	assert.Equal(t, policies.StatusLapsed, list[0].Status)
	require.NotNil(t, list[0].InsuredName)
	assert.Equal(t, "Bob", *list[0].InsuredName)

	text, isError = f.call(t, toolListPolicies, map[string]any{"status": "Pending"})
	assert.True(t, isError)
	assert.True(t, strings.Contains(text, "unknown status"), text)
}

func TestGetPolicyOmitsPaymentAccount(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolGetPolicy, map[string]any{"policyId": 1})
	require.False(t, isError, text)
	assert.NotContains(t, text, "paymentAccount")
	assert.NotContains(t, text, "policyFilePath")

	detail := decode[analytics.PolicyDetail](t, text)
	assert.Equal(t, "Term Life", detail.ProductName)
	assert.Empty(t, detail.Beneficiaries)

	text, isError = f.call(t, toolGetPolicy, map[string]any{"policyId": 42})
	assert.True(t, isError)
	assert.Equal(t, "Policy with id 42 not found", text)
}

func TestCoverageAnalysis(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolCoverageAnalysis, map[string]any{"type": "member", "id": 2})
	require.False(t, isError, text)
	coverage := decode[analytics.MemberCoverage](t, text)
	assert.Equal(t, "Bob", coverage.Name)
	assert.Zero(t, coverage.PolicyCount)

	text, isError = f.call(t, toolCoverageAnalysis, map[string]any{"type": "asset", "id": 7})
	assert.True(t, isError)
	assert.Equal(t, "Asset with id 7 not found", text)

	_, isError = f.call(t, toolCoverageAnalysis, map[string]any{"type": "pet", "id": 1})
	assert.True(t, isError)
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolDashboardSummary, nil)
	require.False(t, isError, text)

	summary := decode[analytics.DashboardSummary](t, text)
	assert.Equal(t, 2, summary.MemberCount)
	assert.Equal(t, 2, summary.PolicyCount)
	assert.Equal(t, 1, summary.ActivePolicyCount)
	assert.InDelta(t, 3000, summary.TotalPremium, 0.001)
	assert.InDelta(t, 1000000, summary.TotalSumAssured, 0.001)
	assert.Equal(t, 1, summary.ByCategory[policies.CategoryLife].Count)
	assert.NotContains(t, summary.ByCategory, policies.CategoryMedical)
}

func TestRenewalOverviewRejectsOutOfRangeMonths(t *testing.T) {
	f := newFixture(t)
	f.enable(t)

	text, isError := f.call(t, toolRenewalOverview, nil)
	require.False(t, isError, text)
	overview := decode[analytics.RenewalOverview](t, text)
	assert.Equal(t, analytics.DefaultLookAheadMonths, overview.LookAheadMonths)

	_, isError = f.call(t, toolRenewalOverview, map[string]any{"months": 500})
	assert.True(t, isError)
}

func TestRenewalOverviewAdvertisesMonthRange(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := f.session.ListTools(ctx, nil)
	require.NoError(t, err)

	var tool *mcpsdk.Tool
	for _, candidate := range res.Tools {
		if candidate.Name == toolRenewalOverview {
			tool = candidate
		}
	}
	require.NotNil(t, tool)
	assert.Contains(t, tool.Description, "1 to 120 months")

	schema, err := json.Marshal(tool.InputSchema)
	require.NoError(t, err)
	assert.Contains(t, string(schema), "between 1 and 120")
}

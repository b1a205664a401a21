package analytics

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"surety/internal/domain/assets"
	"surety/internal/domain/members"
	"surety/internal/domain/policies"
)

// Service builds read-only views over members, policies and assets. Joins
// happen in memory on id-to-name maps; the data set is a single household.
type Service struct {
	members  MemberReader
	policies PolicyReader
	assets   AssetReader
	insurers InsurerReader
	now      func() time.Time
}

func NewService(members MemberReader, policies PolicyReader, assets AssetReader, insurers InsurerReader) *Service {
	return &Service{
		members:  members,
		policies: policies,
		assets:   assets,
		insurers: insurers,
		now:      time.Now,
	}
}

func (s *Service) ListMembers(ctx context.Context) ([]MemberSummary, error) {
	list, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]MemberSummary, 0, len(list))
	for _, member := range list {
		result = append(result, toMemberSummary(member))
	}
	return result, nil
}

// MemberDetail returns the member with every policy they appear on. A policy
// where the member is both applicant and insured is listed once as insured.
func (s *Service) MemberDetail(ctx context.Context, memberID int64) (*MemberDetail, error) {
	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := MemberDetail{MemberSummary: toMemberSummary(*member), Policies: []MemberPolicy{}}
	for _, policy := range list {
		insured := policy.InsuredMemberID != nil && *policy.InsuredMemberID == memberID
		applicant := policy.ApplicantID == memberID
		if !insured && !applicant {
			continue
		}
		role := RoleApplicant
		if insured {
			role = RoleInsured
		}
		detail.Policies = append(detail.Policies, MemberPolicy{
			ID:           policy.ID,
			ProductName:  policy.ProductName,
			PolicyNumber: policy.PolicyNumber,
			Category:     policy.Category,
			Status:       policies.DisplayStatus(policy, now),
			Premium:      policy.Premium,
			SumAssured:   policy.SumAssured,
			Role:         role,
		})
	}
	return &detail, nil
}

// ListPolicies derives display status before filtering, so a Lapsed filter
// also matches stored Active policies past their expiry date.
func (s *Service) ListPolicies(ctx context.Context, filter PolicyFilter) ([]PolicySummary, error) {
	if filter.Status != "" && !slices.Contains(policies.Statuses, filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, filter.Status)
	}
	if filter.Category != "" && !slices.Contains(policies.Categories, filter.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, filter.Category)
	}

	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]PolicySummary, 0, len(list))
	for _, policy := range list {
		summary := names.policySummary(policy, now)
		if filter.Status != "" && summary.Status != filter.Status {
			continue
		}
		if filter.Category != "" && policy.Category != filter.Category {
			continue
		}
		if filter.MemberID != nil {
			insured := policy.InsuredMemberID != nil && *policy.InsuredMemberID == *filter.MemberID
			if !insured && policy.ApplicantID != *filter.MemberID {
				continue
			}
		}
		result = append(result, summary)
	}
	return result, nil
}

func (s *Service) PolicyDetail(ctx context.Context, policyID int64) (*PolicyDetail, error) {
	policy, err := s.policies.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	beneficiaries, err := s.policies.ListBeneficiaries(ctx, policyID)
	if err != nil {
		return nil, err
	}
	items, err := s.policies.ListCoverageItems(ctx, policyID)
	if err != nil {
		return nil, err
	}

	detail := PolicyDetail{
		PolicySummary:    names.policySummary(*policy, s.now()),
		InsuredType:      policy.InsuredType,
		PaymentFrequency: policy.PaymentFrequency,
		PaymentYears:     policy.PaymentYears,
		RenewalType:      policy.RenewalType,
		NextDueDate:      policy.NextDueDate,
		Notes:            policy.Notes,
		Beneficiaries:    make([]BeneficiaryView, 0, len(beneficiaries)),
		CoverageItems:    make([]CoverageItemView, 0, len(items)),
	}
	for _, beneficiary := range beneficiaries {
		name := beneficiary.ExternalName
		if beneficiary.MemberID != nil {
			name = names.member(*beneficiary.MemberID)
		}
		detail.Beneficiaries = append(detail.Beneficiaries, BeneficiaryView{
			Name:         name,
			SharePercent: beneficiary.SharePercent,
			RankOrder:    beneficiary.RankOrder,
		})
	}
	for _, item := range items {
		detail.CoverageItems = append(detail.CoverageItems, CoverageItemView{
			Name:            item.Name,
			PeriodLimit:     item.PeriodLimit,
			LifetimeLimit:   item.LifetimeLimit,
			Deductible:      item.Deductible,
			CoveragePercent: item.CoveragePercent,
			IsOptional:      item.IsOptional,
		})
	}
	return &detail, nil
}

func (s *Service) ListAssets(ctx context.Context) ([]AssetView, error) {
	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.assets.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]AssetView, 0, len(list))
	for _, asset := range list {
		result = append(result, AssetView{
			ID:         asset.ID,
			Name:       asset.Name,
			Type:       asset.Type,
			Identifier: asset.Identifier,
			OwnerName:  names.optionalMember(asset.OwnerID),
			Details:    assets.ParseDetails(asset.Details),
		})
	}
	return result, nil
}

// MemberCoverage aggregates the effectively active policies insuring the
// member.
func (s *Service) MemberCoverage(ctx context.Context, memberID int64) (*MemberCoverage, error) {
	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	coverage := MemberCoverage{
		Name:       member.Name,
		Relation:   member.Relation,
		ByCategory: map[string]CategoryTotals{},
		Policies:   []PolicySummary{},
	}
	for _, policy := range list {
		if policy.InsuredMemberID == nil || *policy.InsuredMemberID != memberID {
			continue
		}
		if !policies.IsEffectivelyActive(policy, now) {
			continue
		}
		coverage.PolicyCount++
		coverage.TotalPremium += policy.Premium
		coverage.TotalSumAssured += policy.SumAssured
		totals := coverage.ByCategory[policy.Category]
		totals.add(policy)
		coverage.ByCategory[policy.Category] = totals
		coverage.Policies = append(coverage.Policies, names.policySummary(policy, now))
	}
	return &coverage, nil
}

// AssetCoverage lists the effectively active policies insuring the asset.
func (s *Service) AssetCoverage(ctx context.Context, assetID int64) (*AssetCoverage, error) {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	coverage := AssetCoverage{
		Name:       asset.Name,
		Type:       asset.Type,
		Identifier: asset.Identifier,
		OwnerName:  names.optionalMember(asset.OwnerID),
		Policies:   []PolicySummary{},
	}
	for _, policy := range list {
		if policy.InsuredAssetID == nil || *policy.InsuredAssetID != assetID {
			continue
		}
		if !policies.IsEffectivelyActive(policy, now) {
			continue
		}
		coverage.Policies = append(coverage.Policies, names.policySummary(policy, now))
	}
	return &coverage, nil
}

// Coverage dispatches on target, which is either "member" or "asset".
func (s *Service) Coverage(ctx context.Context, target string, id int64) (any, error) {
	switch target {
	case TargetMember:
		return s.MemberCoverage(ctx, id)
	case TargetAsset:
		return s.AssetCoverage(ctx, id)
	default:
		return nil, ErrInvalidTarget
	}
}

// RenewalOverview lists effectively active, unarchived policies whose next
// due date (or expiry date when no due date is set) falls within the next
// months, soonest first. months of zero selects the default window.
func (s *Service) RenewalOverview(ctx context.Context, months int) (*RenewalOverview, error) {
	if months == 0 {
		months = DefaultLookAheadMonths
	}
	if months < 1 || months > MaxLookAheadMonths {
		return nil, ErrInvalidMonths
	}

	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := policies.Today(now)
	cutoff := today.AddDate(0, months, 0)

	type dated struct {
		due    time.Time
		policy RenewalPolicy
	}
	var upcoming []dated
	for _, policy := range list {
		if policy.Archived || !policies.IsEffectivelyActive(policy, now) {
			continue
		}
		raw := policy.NextDueDate
		if raw == nil || *raw == "" {
			raw = policy.ExpiryDate
		}
		if raw == nil || *raw == "" {
			continue
		}
		due, err := time.Parse(time.DateOnly, *raw)
		if err != nil || due.Before(today) || due.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, dated{due: due, policy: RenewalPolicy{
			ID:            policy.ID,
			ProductName:   policy.ProductName,
			PolicyNumber:  policy.PolicyNumber,
			InsurerName:   policy.InsurerName,
			Premium:       policy.Premium,
			NextDueDate:   policy.NextDueDate,
			ExpiryDate:    policy.ExpiryDate,
			ApplicantName: names.member(policy.ApplicantID),
		}})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].due.Before(upcoming[j].due)
	})

	overview := RenewalOverview{
		LookAheadMonths: months,
		Total:           len(upcoming),
		Policies:        make([]RenewalPolicy, 0, len(upcoming)),
	}
	for _, item := range upcoming {
		overview.Policies = append(overview.Policies, item.policy)
	}
	return &overview, nil
}

// DashboardSummary counts every policy but totals only effectively active
// ones.
func (s *Service) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	memberList, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}
	summary := summarize(len(memberList), list, s.now())
	return &summary, nil
}

func summarize(memberCount int, list []policies.Policy, now time.Time) DashboardSummary {
	summary := DashboardSummary{
		MemberCount: memberCount,
		PolicyCount: len(list),
		ByCategory:  map[string]CategoryTotals{},
	}
	for _, policy := range list {
		if !policies.IsEffectivelyActive(policy, now) {
			continue
		}
		summary.ActivePolicyCount++
		summary.TotalPremium += policy.Premium
		summary.TotalSumAssured += policy.SumAssured
		totals := summary.ByCategory[policy.Category]
		totals.add(policy)
		summary.ByCategory[policy.Category] = totals
	}
	return summary
}

type nameIndex struct {
	members map[int64]string
	assets  map[int64]string
}

func (s *Service) loadNames(ctx context.Context) (nameIndex, error) {
	memberList, err := s.members.ListMembers(ctx)
	if err != nil {
		return nameIndex{}, err
	}
	assetList, err := s.assets.ListAssets(ctx)
	if err != nil {
		return nameIndex{}, err
	}

	index := nameIndex{
		members: make(map[int64]string, len(memberList)),
		assets:  make(map[int64]string, len(assetList)),
	}
	for _, member := range memberList {
		index.members[member.ID] = member.Name
	}
	for _, asset := range assetList {
		index.assets[asset.ID] = asset.Name
	}
	return index, nil
}

func (n nameIndex) member(id int64) *string {
	name, ok := n.members[id]
	if !ok {
		return nil
	}
	return &name
}

func (n nameIndex) memberOrUnknown(id *int64) string {
	if name := n.optionalMember(id); name != nil {
		return *name
	}
	return unknownName
}

func (n nameIndex) optionalMember(id *int64) *string {
	if id == nil {
		return nil
	}
	return n.member(*id)
}

func (n nameIndex) policySummary(policy policies.Policy, now time.Time) PolicySummary {
	summary := PolicySummary{
		ID:            policy.ID,
		ProductName:   policy.ProductName,
		PolicyNumber:  policy.PolicyNumber,
		Category:      policy.Category,
		SubCategory:   policy.SubCategory,
		InsurerName:   policy.InsurerName,
		Status:        policies.DisplayStatus(policy, now),
		Premium:       policy.Premium,
		SumAssured:    policy.SumAssured,
		EffectiveDate: policy.EffectiveDate,
		ExpiryDate:    policy.ExpiryDate,
		ApplicantName: n.member(policy.ApplicantID),
		InsuredName:   n.optionalMember(policy.InsuredMemberID),
	}
	if policy.InsuredAssetID != nil {
		if name, ok := n.assets[*policy.InsuredAssetID]; ok {
			summary.InsuredAssetName = &name
		}
	}
	return summary
}

func toMemberSummary(member members.Member) MemberSummary {
	return MemberSummary{
		ID:        member.ID,
		Name:      member.Name,
		Relation:  member.Relation,
		Gender:    member.Gender,
		BirthDate: member.BirthDate,
		Phone:     member.Phone,
	}
}

package analytics

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"time"

	"surety/internal/domain/policies"
)

const (
	unknownName = "Unknown"

	topInsurers    = 8
	timelineMonths = 12
)

// DashboardOverview returns the summary plus chart series. Charts cover
// effectively active policies that are not archived. Ties in every ranking
// break on name so output is stable.
func (s *Service) DashboardOverview(ctx context.Context) (*DashboardOverview, error) {
	memberList, err := s.members.ListMembers(ctx)
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
	active := make([]policies.Policy, 0, len(list))
	for _, policy := range list {
		if policy.Archived || !policies.IsEffectivelyActive(policy, now) {
			continue
		}
		active = append(active, policy)
	}

	byCategory := premiumByCategory(active)
	today := policies.Today(now)
	return &DashboardOverview{
		DashboardSummary: summarize(len(memberList), list, now),
		Charts: DashboardCharts{
			PremiumByCategory:        byCategory,
			PremiumByMember:          premiumByMember(active, names),
			PolicyByInsurer:          policyByInsurer(active),
			PolicyByChannel:          policyByChannel(active),
			CoverageByCategory:       coverageByCategory(byCategory),
			MemberByCategory:         memberMatrix(active, names, func(policies.Policy) float64 { return 1 }),
			MemberPremiumByCategory:  memberMatrix(active, names, func(p policies.Policy) float64 { return p.Premium }),
			MemberCoverageByCategory: memberMatrix(active, names, func(p policies.Policy) float64 { return p.SumAssured }),
			RenewalTimeline:          renewalTimeline(active, today),
			ExpiryTimeline:           expiryTimeline(active, today),
		},
	}, nil
}

func premiumByCategory(list []policies.Policy) []CategorySlice {
	buckets := map[string]*CategorySlice{}
	for _, policy := range list {
		bucket, ok := buckets[policy.Category]
		if !ok {
			bucket = &CategorySlice{Category: policy.Category}
			buckets[policy.Category] = bucket
		}
		bucket.Count++
		bucket.Premium += policy.Premium
		bucket.SumAssured += policy.SumAssured
	}

	result := make([]CategorySlice, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	slices.SortFunc(result, func(a, b CategorySlice) int {
		return cmp.Or(cmp.Compare(b.Premium, a.Premium), cmp.Compare(a.Category, b.Category))
	})
	return result
}

func premiumByMember(list []policies.Policy, names nameIndex) []MemberPremium {
	buckets := map[int64]*MemberPremium{}
	for _, policy := range list {
		if policy.InsuredMemberID == nil {
			continue
		}
		id := *policy.InsuredMemberID
		bucket, ok := buckets[id]
		if !ok {
			bucket = &MemberPremium{MemberID: id, Name: names.memberOrUnknown(&id)}
			buckets[id] = bucket
		}
		bucket.Count++
		bucket.Premium += policy.Premium
	}

	result := make([]MemberPremium, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	slices.SortFunc(result, func(a, b MemberPremium) int {
		return cmp.Or(cmp.Compare(b.Premium, a.Premium), cmp.Compare(a.Name, b.Name), cmp.Compare(a.MemberID, b.MemberID))
	})
	return result
}

func groupByName(list []policies.Policy, key func(policies.Policy) string) []NamedTotals {
	buckets := map[string]*NamedTotals{}
	for _, policy := range list {
		name := key(policy)
		bucket, ok := buckets[name]
		if !ok {
			bucket = &NamedTotals{Name: name}
			buckets[name] = bucket
		}
		bucket.Count++
		bucket.Premium += policy.Premium
	}
	result := make([]NamedTotals, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	return result
}

// policyByInsurer keeps the insurers holding the most policies.
func policyByInsurer(list []policies.Policy) []NamedTotals {
	result := groupByName(list, func(p policies.Policy) string { return p.InsurerName })
	slices.SortFunc(result, func(a, b NamedTotals) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Name, b.Name))
	})
	if len(result) > topInsurers {
		result = result[:topInsurers]
	}
	return result
}

func policyByChannel(list []policies.Policy) []NamedTotals {
	result := groupByName(list, func(p policies.Policy) string {
		if p.Channel == nil || *p.Channel == "" {
			return unknownName
		}
		return *p.Channel
	})
	slices.SortFunc(result, func(a, b NamedTotals) int {
		return cmp.Or(cmp.Compare(b.Premium, a.Premium), cmp.Compare(a.Name, b.Name))
	})
	return result
}

func coverageByCategory(byCategory []CategorySlice) []CoverageSlice {
	result := make([]CoverageSlice, 0, len(byCategory))
	for _, slice := range byCategory {
		if slice.SumAssured <= 0 {
			continue
		}
		result = append(result, CoverageSlice{Category: slice.Category, SumAssured: slice.SumAssured})
	}
	slices.SortFunc(result, func(a, b CoverageSlice) int {
		return cmp.Or(cmp.Compare(b.SumAssured, a.SumAssured), cmp.Compare(a.Category, b.Category))
	})
	return result
}

// memberMatrix sums value per insured member and category.
func memberMatrix(list []policies.Policy, names nameIndex, value func(policies.Policy) float64) CategoryMatrix {
	rows := map[int64]*CategoryMatrixRow{}
	categories := map[string]struct{}{}
	for _, policy := range list {
		if policy.InsuredMemberID == nil {
			continue
		}
		id := *policy.InsuredMemberID
		row, ok := rows[id]
		if !ok {
			row = &CategoryMatrixRow{Name: names.memberOrUnknown(&id), Values: map[string]float64{}}
			rows[id] = row
		}
		v := value(policy)
		row.Values[policy.Category] += v
		row.Total += v
		categories[policy.Category] = struct{}{}
	}

	matrix := CategoryMatrix{
		Categories: slices.Sorted(maps.Keys(categories)),
		Data:       make([]CategoryMatrixRow, 0, len(rows)),
	}
	for _, row := range rows {
		matrix.Data = append(matrix.Data, *row)
	}
	slices.SortFunc(matrix.Data, func(a, b CategoryMatrixRow) int {
		return cmp.Or(cmp.Compare(b.Total, a.Total), cmp.Compare(a.Name, b.Name))
	})
	return matrix
}

// renewalTimeline buckets each policy's next effective-date anniversary
// strictly after today by month.
func renewalTimeline(list []policies.Policy, today time.Time) []MonthTotals {
	buckets := map[string]*MonthTotals{}
	for _, policy := range list {
		effective, err := time.Parse(time.DateOnly, policy.EffectiveDate)
		if err != nil {
			continue
		}
		next := time.Date(today.Year(), effective.Month(), effective.Day(), 0, 0, 0, 0, time.UTC)
		if !next.After(today) {
			next = time.Date(today.Year()+1, effective.Month(), effective.Day(), 0, 0, 0, 0, time.UTC)
		}
		addToMonth(buckets, next, policy.Premium)
	}
	return firstMonths(buckets)
}

// expiryTimeline buckets expiry dates from today on by month.
func expiryTimeline(list []policies.Policy, today time.Time) []MonthTotals {
	buckets := map[string]*MonthTotals{}
	for _, policy := range list {
		if policy.ExpiryDate == nil || *policy.ExpiryDate == "" {
			continue
		}
		expiry, err := time.Parse(time.DateOnly, *policy.ExpiryDate)
		if err != nil || expiry.Before(today) {
			continue
		}
		addToMonth(buckets, expiry, policy.Premium)
	}
	return firstMonths(buckets)
}

func addToMonth(buckets map[string]*MonthTotals, date time.Time, premium float64) {
	key := date.Format(monthLayout)
	bucket, ok := buckets[key]
	if !ok {
		bucket = &MonthTotals{Month: key}
		buckets[key] = bucket
	}
	bucket.Count++
	bucket.Premium += premium
}

func firstMonths(buckets map[string]*MonthTotals) []MonthTotals {
	result := make([]MonthTotals, 0, len(buckets))
	for _, key := range slices.Sorted(maps.Keys(buckets)) {
		result = append(result, *buckets[key])
	}
	if len(result) > timelineMonths {
		result = result[:timelineMonths]
	}
	return result
}

package analytics

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"surety/internal/domain/policies"
)

const monthLayout = "2006-01"

// Life policies whose sub-category names an increasing whole life product
// count as savings.
var savingsLifeMarkers = []string{"增额终身寿", "增额寿"}

// IsSavings reports whether premiums on the policy build savings rather than
// buy protection.
func IsSavings(category string, subCategory *string) bool {
	switch category {
	case policies.CategoryAnnuity:
		return true
	case policies.CategoryLife:
		if subCategory == nil {
			return false
		}
		for _, marker := range savingsLifeMarkers {
			if strings.Contains(*subCategory, marker) {
				return true
			}
		}
	}
	return false
}

// RenewalCalendar projects every premium due date of effectively active,
// unarchived, recurring policies from today through months ahead. Dates step
// from next_due_date by the payment frequency, clamped to the end of shorter
// months. monthlyData always holds one entry per month of the window.
func (s *Service) RenewalCalendar(ctx context.Context, months int) (*RenewalCalendar, error) {
	overview, err := s.RenewalOverview(ctx, months)
	if err != nil {
		return nil, err
	}
	months = overview.LookAheadMonths

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
	end := addMonths(today, months)

	items := []RenewalItem{}
	for _, policy := range list {
		if policy.Archived || !policies.IsEffectivelyActive(policy, now) {
			continue
		}
		for _, due := range dueDates(policy, today, end) {
			items = append(items, RenewalItem{
				ID:                policy.ID,
				ProductName:       policy.ProductName,
				Category:          policy.Category,
				Premium:           policy.Premium,
				DueDate:           due.Format(time.DateOnly),
				DaysUntilDue:      int(due.Sub(today).Hours() / 24),
				InsuredMemberName: names.memberOrUnknown(policy.InsuredMemberID),
				IsSavings:         IsSavings(policy.Category, policy.SubCategory),
			})
		}
	}
	slices.SortStableFunc(items, func(a, b RenewalItem) int {
		return cmp.Or(cmp.Compare(a.DueDate, b.DueDate), cmp.Compare(a.ID, b.ID))
	})

	return &RenewalCalendar{
		RenewalOverview: *overview,
		Summary:         summarizeRenewals(items),
		MonthlyData:     groupByMonth(items, today, months),
		PolicyNames:     policyNames(items),
	}, nil
}

// dueDates lists the policy's due dates within [from, to]. Single premium
// policies and policies without a next due date have none.
func dueDates(policy policies.Policy, from, to time.Time) []time.Time {
	if policy.NextDueDate == nil || *policy.NextDueDate == "" {
		return nil
	}
	var interval int
	switch policy.PaymentFrequency {
	case policies.FrequencyMonthly:
		interval = 1
	case policies.FrequencyYearly:
		interval = 12
	default:
		return nil
	}
	anchor, err := time.Parse(time.DateOnly, *policy.NextDueDate)
	if err != nil {
		return nil
	}

	var dates []time.Time
	for step := 0; ; step += interval {
		due := addMonths(anchor, step)
		if due.After(to) {
			break
		}
		if !due.Before(from) {
			dates = append(dates, due)
		}
	}
	return dates
}

// addMonths moves date by months, clamping the day to the target month's
// length so Jan 31 plus one month is Feb 28 (or 29).
func addMonths(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func groupByMonth(items []RenewalItem, today time.Time, months int) []MonthlyRenewal {
	index := make(map[string]int, months)
	result := make([]MonthlyRenewal, 0, months)
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		key := start.AddDate(0, i, 0).Format(monthLayout)
		index[key] = i
		result = append(result, MonthlyRenewal{Month: key, Items: []RenewalItem{}})
	}

	// A due date on the last day of the window can fall one month past the
	// listed months; it is still counted in the summary.
	for _, item := range items {
		i, ok := index[item.DueDate[:len(monthLayout)]]
		if !ok {
			continue
		}
		bucket := &result[i]
		bucket.Items = append(bucket.Items, item)
		bucket.Count++
		bucket.TotalPremium += item.Premium
		if item.IsSavings {
			bucket.SavingsPremium += item.Premium
		} else {
			bucket.ProtectionPremium += item.Premium
		}
	}
	return result
}

func summarizeRenewals(items []RenewalItem) RenewalSummary {
	var summary RenewalSummary
	seen := map[int64]struct{}{}
	for _, item := range items {
		seen[item.ID] = struct{}{}
		summary.TotalPremium += item.Premium
		if item.IsSavings {
			summary.SavingsPremium += item.Premium
		} else {
			summary.ProtectionPremium += item.Premium
		}
	}
	summary.TotalCount = len(seen)
	summary.RenewalCount = len(items)
	return summary
}

func policyNames(items []RenewalItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.ProductName)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

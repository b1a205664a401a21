package analytics

import (
	"context"

	"surety/internal/domain/policies"
)

var boardCategoryOrder = []string{
	policies.CategoryAccident,
	policies.CategoryMedical,
	policies.CategoryCriticalIllness,
	policies.CategoryLife,
	policies.CategoryAnnuity,
	policies.CategoryProperty,
}

// CoverageBoard builds a card per member from the member-insured policies
// and groups the selected member's policies by category. A nil memberID
// selects the first member; an unknown one selects nobody.
func (s *Service) CoverageBoard(ctx context.Context, memberID *int64) (*CoverageBoard, error) {
	memberList, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}
	insurerList, err := s.insurers.ListInsurers(ctx)
	if err != nil {
		return nil, err
	}

	phones := make(map[string]*string, len(insurerList))
	for _, insurer := range insurerList {
		phones[insurer.Name] = insurer.Phone
	}
	insured := map[int64][]policies.Policy{}
	for _, policy := range list {
		if policy.InsuredType != policies.InsuredTypeMember || policy.InsuredMemberID == nil {
			continue
		}
		insured[*policy.InsuredMemberID] = append(insured[*policy.InsuredMemberID], policy)
	}

	now := s.now()
	board := CoverageBoard{
		Members:        make([]MemberCard, 0, len(memberList)),
		CategoryGroups: []CategoryGroup{},
	}
	for _, member := range memberList {
		card := MemberCard{
			ID:       member.ID,
			Name:     member.Name,
			Relation: member.Relation,
			Gender:   member.Gender,
		}
		for _, policy := range insured[member.ID] {
			if policies.IsEffectivelyActive(policy, now) {
				card.ActivePolicyCount++
				card.TotalSumAssured += policy.SumAssured
			}
		}
		board.Members = append(board.Members, card)
	}

	if memberID == nil && len(board.Members) > 0 {
		memberID = &board.Members[0].ID
	}
	if memberID == nil {
		return &board, nil
	}
	for i := range board.Members {
		if board.Members[i].ID == *memberID {
			selected := board.Members[i]
			board.SelectedMember = &selected
			break
		}
	}
	if board.SelectedMember == nil {
		return &board, nil
	}

	groups := map[string]*CategoryGroup{}
	for _, policy := range insured[*memberID] {
		group, ok := groups[policy.Category]
		if !ok {
			group = &CategoryGroup{Category: policy.Category}
			groups[policy.Category] = group
		}
		status := policies.DisplayStatus(policy, now)
		group.Policies = append(group.Policies, PolicyCard{
			ID:            policy.ID,
			ProductName:   policy.ProductName,
			Category:      policy.Category,
			SubCategory:   policy.SubCategory,
			SumAssured:    policy.SumAssured,
			Premium:       policy.Premium,
			InsurerName:   policy.InsurerName,
			InsurerPhone:  phones[policy.InsurerName],
			EffectiveDate: policy.EffectiveDate,
			ExpiryDate:    policy.ExpiryDate,
			Status:        status,
			IsActive:      status == policies.StatusActive,
		})
		group.Count++
		group.TotalSumAssured += policy.SumAssured
	}
	for _, category := range boardCategoryOrder {
		if group, ok := groups[category]; ok {
			board.CategoryGroups = append(board.CategoryGroups, *group)
		}
	}
	return &board, nil
}

package policies

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListPolicies(ctx context.Context) ([]Policy, error) {
	return s.repo.ListPolicies(ctx)
}

func (s *Service) GetPolicy(ctx context.Context, id int64) (*Policy, error) {
	return s.repo.GetPolicy(ctx, id)
}

// DisplayStatus derives the reader-facing status using the service clock.
func (s *Service) DisplayStatus(policy Policy) string {
	return DisplayStatus(policy, s.now())
}

func (s *Service) CreatePolicy(ctx context.Context, input PolicyInput) (*Policy, error) {
	if err := validatePolicyInput(&input); err != nil {
		return nil, err
	}

	var policy Policy
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := ensurePolicyNumberFree(ctx, tx, input.PolicyNumber, 0); err != nil {
			return err
		}
		applyPolicyInput(&policy, input)
		return tx.CreatePolicy(ctx, &policy)
	})
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (s *Service) UpdatePolicy(ctx context.Context, id int64, input PolicyInput) (*Policy, error) {
	if err := validatePolicyInput(&input); err != nil {
		return nil, err
	}

	var result *Policy
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		policy, err := tx.GetPolicy(ctx, id)
		if err != nil {
			return err
		}
		if err := ensurePolicyNumberFree(ctx, tx, input.PolicyNumber, id); err != nil {
			return err
		}
		applyPolicyInput(policy, input)
		if err := tx.UpdatePolicy(ctx, policy); err != nil {
			return err
		}
		result = policy
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeletePolicy removes the policy together with its dependent rows.
func (s *Service) DeletePolicy(ctx context.Context, id int64) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetPolicy(ctx, id); err != nil {
			return err
		}
		if err := tx.DeletePolicyChildren(ctx, id); err != nil {
			return err
		}
		deleted, err := tx.DeletePolicy(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrPolicyNotFound
		}
		return nil
	})
}

func (s *Service) ListBeneficiaries(ctx context.Context, policyID int64) ([]Beneficiary, error) {
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	return s.repo.ListBeneficiaries(ctx, policyID)
}

func (s *Service) ReplaceBeneficiaries(ctx context.Context, policyID int64, inputs []BeneficiaryInput) ([]Beneficiary, error) {
	beneficiaries := make([]Beneficiary, 0, len(inputs))
	for i, input := range inputs {
		hasMember := input.MemberID != nil
		hasExternal := input.ExternalName != nil && strings.TrimSpace(*input.ExternalName) != ""
		if hasMember == hasExternal {
			return nil, fmt.Errorf("%w: entry %d needs exactly one of memberId or externalName", ErrInvalidBeneficiary, i)
		}
		if input.SharePercent <= 0 || input.SharePercent > 100 {
			return nil, fmt.Errorf("%w: entry %d sharePercent must be within (0, 100]", ErrInvalidBeneficiary, i)
		}
		if input.RankOrder < 1 {
			return nil, fmt.Errorf("%w: entry %d rankOrder must be positive", ErrInvalidBeneficiary, i)
		}
		beneficiaries = append(beneficiaries, Beneficiary{
			PolicyID:       policyID,
			MemberID:       input.MemberID,
			ExternalName:   input.ExternalName,
			ExternalIDCard: input.ExternalIDCard,
			SharePercent:   input.SharePercent,
			RankOrder:      input.RankOrder,
		})
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetPolicy(ctx, policyID); err != nil {
			return err
		}
		return tx.ReplaceBeneficiaries(ctx, policyID, beneficiaries)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.ListBeneficiaries(ctx, policyID)
}

func (s *Service) ListPayments(ctx context.Context, policyID int64) ([]Payment, error) {
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, policyID)
}

func (s *Service) CreatePayment(ctx context.Context, policyID int64, input PaymentInput) (*Payment, error) {
	if err := validatePaymentInput(&input); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}

	payment := Payment{PolicyID: policyID}
	applyPaymentInput(&payment, input)
	if err := s.repo.CreatePayment(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Service) UpdatePayment(ctx context.Context, policyID, paymentID int64, input PaymentInput) (*Payment, error) {
	if err := validatePaymentInput(&input); err != nil {
		return nil, err
	}

	payment, err := s.repo.GetPayment(ctx, policyID, paymentID)
	if err != nil {
		return nil, err
	}
	applyPaymentInput(payment, input)
	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) DeletePayment(ctx context.Context, policyID, paymentID int64) error {
	deleted, err := s.repo.DeletePayment(ctx, policyID, paymentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *Service) ListCashValues(ctx context.Context, policyID int64) ([]CashValue, error) {
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	return s.repo.ListCashValues(ctx, policyID)
}

func (s *Service) ReplaceCashValues(ctx context.Context, policyID int64, inputs []CashValueInput) ([]CashValue, error) {
	values := make([]CashValue, 0, len(inputs))
	seen := make(map[int64]struct{}, len(inputs))
	for _, input := range inputs {
		if input.PolicyYear < 1 {
			return nil, fmt.Errorf("%w: policyYear must be positive", ErrInvalidCashValue)
		}
		if _, ok := seen[input.PolicyYear]; ok {
			return nil, fmt.Errorf("%w: duplicate policyYear %d", ErrInvalidCashValue, input.PolicyYear)
		}
		seen[input.PolicyYear] = struct{}{}
		values = append(values, CashValue{PolicyID: policyID, PolicyYear: input.PolicyYear, Value: input.Value})
	}
	slices.SortFunc(values, func(a, b CashValue) int {
		return int(a.PolicyYear - b.PolicyYear)
	})

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetPolicy(ctx, policyID); err != nil {
			return err
		}
		return tx.ReplaceCashValues(ctx, policyID, values)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.ListCashValues(ctx, policyID)
}

func (s *Service) GetExtension(ctx context.Context, policyID int64) (*Extension, error) {
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	return s.repo.GetExtension(ctx, policyID)
}

// SetExtension stores data, which must be a JSON object, for the policy.
func (s *Service) SetExtension(ctx context.Context, policyID int64, data []byte) (*Extension, error) {
	var object map[string]any
	if err := json.Unmarshal(data, &object); err != nil || object == nil {
		return nil, fmt.Errorf("%w: data must be a JSON object", ErrInvalidExtension)
	}

	extension := Extension{PolicyID: policyID, Data: string(data)}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetPolicy(ctx, policyID); err != nil {
			return err
		}
		return tx.UpsertExtension(ctx, &extension)
	})
	if err != nil {
		return nil, err
	}
	return &extension, nil
}

func (s *Service) ListCoverageItems(ctx context.Context, policyID int64) ([]CoverageItem, error) {
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	return s.repo.ListCoverageItems(ctx, policyID)
}

func (s *Service) GetCoverageItem(ctx context.Context, policyID, itemID int64) (*CoverageItem, error) {
	return s.repo.GetCoverageItem(ctx, policyID, itemID)
}

func (s *Service) CreateCoverageItem(ctx context.Context, policyID int64, input CoverageItemInput) (*CoverageItem, error) {
	if err := validateCoverageItemInput(&input); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}

	item := CoverageItem{PolicyID: policyID}
	applyCoverageItemInput(&item, input)
	if err := s.repo.CreateCoverageItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateCoverageItem(ctx context.Context, policyID, itemID int64, input CoverageItemInput) (*CoverageItem, error) {
	if err := validateCoverageItemInput(&input); err != nil {
		return nil, err
	}

	item, err := s.repo.GetCoverageItem(ctx, policyID, itemID)
	if err != nil {
		return nil, err
	}
	applyCoverageItemInput(item, input)
	if err := s.repo.UpdateCoverageItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteCoverageItem(ctx context.Context, policyID, itemID int64) error {
	deleted, err := s.repo.DeleteCoverageItem(ctx, policyID, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCoverageItemNotFound
	}
	return nil
}

func ensurePolicyNumberFree(ctx context.Context, repo Repository, policyNumber string, excludeID int64) error {
	count, err := repo.CountPoliciesByNumber(ctx, policyNumber, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPolicyNumberTaken
	}
	return nil
}

func validatePolicyInput(input *PolicyInput) error {
	input.InsurerName = strings.TrimSpace(input.InsurerName)
	input.ProductName = strings.TrimSpace(input.ProductName)
	input.PolicyNumber = strings.TrimSpace(input.PolicyNumber)
	input.EffectiveDate = strings.TrimSpace(input.EffectiveDate)
	if input.InsuredType == "" {
		input.InsuredType = InsuredTypeMember
	}
	if input.PaymentFrequency == "" {
		input.PaymentFrequency = FrequencyYearly
	}
	if input.Status == "" {
		input.Status = StatusActive
	}

	switch {
	case input.ApplicantID <= 0:
		return fmt.Errorf("%w: applicantId is required", ErrInvalidPolicy)
	case !slices.Contains(Categories, input.Category):
		return fmt.Errorf("%w: category must be one of %s", ErrInvalidPolicy, strings.Join(Categories, ", "))
	case input.InsurerName == "":
		return fmt.Errorf("%w: insurerName is required", ErrInvalidPolicy)
	case input.ProductName == "":
		return fmt.Errorf("%w: productName is required", ErrInvalidPolicy)
	case input.PolicyNumber == "":
		return fmt.Errorf("%w: policyNumber is required", ErrInvalidPolicy)
	case input.EffectiveDate == "":
		return fmt.Errorf("%w: effectiveDate is required", ErrInvalidPolicy)
	case !slices.Contains(Statuses, input.Status):
		return fmt.Errorf("%w: status must be one of %s", ErrInvalidPolicy, strings.Join(Statuses, ", "))
	case !slices.Contains(Frequencies, input.PaymentFrequency):
		return fmt.Errorf("%w: paymentFrequency must be one of %s", ErrInvalidPolicy, strings.Join(Frequencies, ", "))
	case input.SumAssured < 0 || input.Premium < 0:
		return fmt.Errorf("%w: sumAssured and premium must not be negative", ErrInvalidPolicy)
	}

	switch input.InsuredType {
	case InsuredTypeMember:
		if input.InsuredMemberID == nil || input.InsuredAssetID != nil {
			return fmt.Errorf("%w: a Member policy needs insuredMemberId and no insuredAssetId", ErrInvalidPolicy)
		}
	case InsuredTypeAsset:
		if input.InsuredAssetID == nil || input.InsuredMemberID != nil {
			return fmt.Errorf("%w: an Asset policy needs insuredAssetId and no insuredMemberId", ErrInvalidPolicy)
		}
	default:
		return fmt.Errorf("%w: insuredType must be Member or Asset", ErrInvalidPolicy)
	}

	if input.RenewalType != nil && !slices.Contains([]string{RenewalManual, RenewalAuto, RenewalYearly}, *input.RenewalType) {
		return fmt.Errorf("%w: renewalType must be Manual, Auto or Yearly", ErrInvalidPolicy)
	}

	dates := []struct {
		name  string
		value *string
	}{
		{"effectiveDate", &input.EffectiveDate},
		{"expiryDate", input.ExpiryDate},
		{"nextDueDate", input.NextDueDate},
		{"hesitationEndDate", input.HesitationEndDate},
	}
	for _, date := range dates {
		if err := validateDate(date.value); err != nil {
			return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidPolicy, date.name)
		}
	}
	return nil
}

func validatePaymentInput(input *PaymentInput) error {
	if input.Status == "" {
		input.Status = PaymentPending
	}
	switch {
	case input.PeriodNumber < 1:
		return fmt.Errorf("%w: periodNumber must be positive", ErrInvalidPayment)
	case input.Amount < 0:
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidPayment)
	case !slices.Contains([]string{PaymentPending, PaymentPaid, PaymentOverdue}, input.Status):
		return fmt.Errorf("%w: status must be Pending, Paid or Overdue", ErrInvalidPayment)
	}
	if strings.TrimSpace(input.DueDate) == "" || validateDate(&input.DueDate) != nil {
		return fmt.Errorf("%w: dueDate must be YYYY-MM-DD", ErrInvalidPayment)
	}
	if validateDate(input.PaidDate) != nil {
		return fmt.Errorf("%w: paidDate must be YYYY-MM-DD", ErrInvalidPayment)
	}
	return nil
}

func validateCoverageItemInput(input *CoverageItemInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCoverageItem)
	}
	if input.CoveragePercent != nil && (*input.CoveragePercent < 0 || *input.CoveragePercent > 100) {
		return fmt.Errorf("%w: coveragePercent must be within [0, 100]", ErrInvalidCoverageItem)
	}
	return nil
}

func validateDate(value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	_, err := time.Parse(time.DateOnly, *value)
	return err
}

func applyPolicyInput(policy *Policy, input PolicyInput) {
	policy.ApplicantID = input.ApplicantID
	policy.InsuredType = input.InsuredType
	policy.InsuredMemberID = input.InsuredMemberID
	policy.InsuredAssetID = input.InsuredAssetID
	policy.Category = input.Category
	policy.SubCategory = input.SubCategory
	policy.InsurerID = input.InsurerID
	policy.InsurerName = input.InsurerName
	policy.ProductName = input.ProductName
	policy.PolicyNumber = input.PolicyNumber
	policy.Channel = input.Channel
	policy.SumAssured = input.SumAssured
	policy.Premium = input.Premium
	policy.PaymentFrequency = input.PaymentFrequency
	policy.PaymentYears = input.PaymentYears
	policy.TotalPayments = input.TotalPayments
	policy.RenewalType = input.RenewalType
	policy.PaymentAccount = input.PaymentAccount
	policy.NextDueDate = input.NextDueDate
	policy.EffectiveDate = input.EffectiveDate
	policy.ExpiryDate = input.ExpiryDate
	policy.HesitationEndDate = input.HesitationEndDate
	policy.WaitingDays = input.WaitingDays
	policy.GuaranteedRenewalYears = input.GuaranteedRenewalYears
	policy.Status = input.Status
	policy.DeathBenefit = input.DeathBenefit
	policy.Archived = input.Archived
	policy.PolicyFilePath = input.PolicyFilePath
	policy.Notes = input.Notes
}

func applyPaymentInput(payment *Payment, input PaymentInput) {
	payment.PeriodNumber = input.PeriodNumber
	payment.DueDate = input.DueDate
	payment.Amount = input.Amount
	payment.Status = input.Status
	payment.PaidDate = input.PaidDate
	payment.PaidAmount = input.PaidAmount
}

func applyCoverageItemInput(item *CoverageItem, input CoverageItemInput) {
	item.Name = input.Name
	item.PeriodLimit = input.PeriodLimit
	item.LifetimeLimit = input.LifetimeLimit
	item.Deductible = input.Deductible
	item.CoveragePercent = input.CoveragePercent
	item.IsOptional = input.IsOptional
	item.Notes = input.Notes
	item.SortOrder = input.SortOrder
}

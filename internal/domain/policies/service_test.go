package policies

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type fakePolicyRepo struct {
	policies      map[int64]*Policy
	beneficiaries map[int64][]Beneficiary
	payments      map[int64]*Payment
	cashValues    map[int64][]CashValue
	extensions    map[int64]*Extension
	items         map[int64]*CoverageItem
	nextID        int64
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{
		policies:      make(map[int64]*Policy),
		beneficiaries: make(map[int64][]Beneficiary),
		payments:      make(map[int64]*Payment),
		cashValues:    make(map[int64][]CashValue),
		extensions:    make(map[int64]*Extension),
		items:         make(map[int64]*CoverageItem),
		nextID:        1,
	}
}

func (r *fakePolicyRepo) id() int64 {
	id := r.nextID
	r.nextID++
	return id
}

func (r *fakePolicyRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakePolicyRepo) ListPolicies(ctx context.Context) ([]Policy, error) {
	result := make([]Policy, 0, len(r.policies))
	for _, policy := range r.policies {
		result = append(result, *policy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakePolicyRepo) GetPolicy(ctx context.Context, id int64) (*Policy, error) {
	policy, ok := r.policies[id]
	if !ok {
		return nil, ErrPolicyNotFound
	}
	copied := *policy
	return &copied, nil
}

func (r *fakePolicyRepo) CountPoliciesByNumber(ctx context.Context, policyNumber string, excludeID int64) (int64, error) {
	var count int64
	for id, policy := range r.policies {
		if id != excludeID && policy.PolicyNumber == policyNumber {
			count++
		}
	}
	return count, nil
}

func (r *fakePolicyRepo) CreatePolicy(ctx context.Context, policy *Policy) error {
	policy.ID = r.id()
	copied := *policy
	r.policies[policy.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) UpdatePolicy(ctx context.Context, policy *Policy) error {
	copied := *policy
	r.policies[policy.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) DeletePolicy(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.policies[id]; !ok {
		return false, nil
	}
	delete(r.policies, id)
	return true, nil
}

func (r *fakePolicyRepo) DeletePolicyChildren(ctx context.Context, policyID int64) error {
	delete(r.beneficiaries, policyID)
	delete(r.cashValues, policyID)
	delete(r.extensions, policyID)
	for id, payment := range r.payments {
		if payment.PolicyID == policyID {
			delete(r.payments, id)
		}
	}
	for id, item := range r.items {
		if item.PolicyID == policyID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakePolicyRepo) ListBeneficiaries(ctx context.Context, policyID int64) ([]Beneficiary, error) {
	return append([]Beneficiary(nil), r.beneficiaries[policyID]...), nil
}

func (r *fakePolicyRepo) ReplaceBeneficiaries(ctx context.Context, policyID int64, beneficiaries []Beneficiary) error {
	for i := range beneficiaries {
		beneficiaries[i].ID = r.id()
	}
	r.beneficiaries[policyID] = beneficiaries
	return nil
}

func (r *fakePolicyRepo) ListPayments(ctx context.Context, policyID int64) ([]Payment, error) {
	result := make([]Payment, 0)
	for _, payment := range r.payments {
		if payment.PolicyID == policyID {
			result = append(result, *payment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PeriodNumber > result[j].PeriodNumber })
	return result, nil
}

func (r *fakePolicyRepo) GetPayment(ctx context.Context, policyID, paymentID int64) (*Payment, error) {
	payment, ok := r.payments[paymentID]
	if !ok || payment.PolicyID != policyID {
		return nil, ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePolicyRepo) CreatePayment(ctx context.Context, payment *Payment) error {
	payment.ID = r.id()
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) UpdatePayment(ctx context.Context, payment *Payment) error {
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) DeletePayment(ctx context.Context, policyID, paymentID int64) (bool, error) {
	payment, ok := r.payments[paymentID]
	if !ok || payment.PolicyID != policyID {
		return false, nil
	}
	delete(r.payments, paymentID)
	return true, nil
}

func (r *fakePolicyRepo) ListCashValues(ctx context.Context, policyID int64) ([]CashValue, error) {
	return append([]CashValue(nil), r.cashValues[policyID]...), nil
}

func (r *fakePolicyRepo) ReplaceCashValues(ctx context.Context, policyID int64, values []CashValue) error {
	r.cashValues[policyID] = values
	return nil
}

func (r *fakePolicyRepo) GetExtension(ctx context.Context, policyID int64) (*Extension, error) {
	extension, ok := r.extensions[policyID]
	if !ok {
		return nil, ErrExtensionNotFound
	}
	return extension, nil
}

func (r *fakePolicyRepo) UpsertExtension(ctx context.Context, extension *Extension) error {
	r.extensions[extension.PolicyID] = extension
	return nil
}

func (r *fakePolicyRepo) ListCoverageItems(ctx context.Context, policyID int64) ([]CoverageItem, error) {
	result := make([]CoverageItem, 0)
	for _, item := range r.items {
		if item.PolicyID == policyID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakePolicyRepo) GetCoverageItem(ctx context.Context, policyID, itemID int64) (*CoverageItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.PolicyID != policyID {
		return nil, ErrCoverageItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakePolicyRepo) CreateCoverageItem(ctx context.Context, item *CoverageItem) error {
	item.ID = r.id()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) UpdateCoverageItem(ctx context.Context, item *CoverageItem) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) DeleteCoverageItem(ctx context.Context, policyID, itemID int64) (bool, error) {
	item, ok := r.items[itemID]
	if !ok || item.PolicyID != policyID {
		return false, nil
	}
	delete(r.items, itemID)
	return true, nil
}

func int64Ptr(value int64) *int64 {
	return &value
}

func strPtr(value string) *string {
	return &value
}

func validInput() PolicyInput {
	return PolicyInput{
		ApplicantID:     1,
		InsuredMemberID: int64Ptr(1),
		Category:        CategoryLife,
		InsurerName:     "Acme Life",
		ProductName:     "Term 20",
		PolicyNumber:    "P-001",
		SumAssured:      1000000,
		Premium:         3000,
		EffectiveDate:   "2024-01-01",
	}
}

func TestCreatePolicyAppliesDefaults(t *testing.T) {
	service := NewService(newFakePolicyRepo())

	policy, err := service.CreatePolicy(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}
	if policy.InsuredType != InsuredTypeMember || policy.Status != StatusActive || policy.PaymentFrequency != FrequencyYearly {
		t.Fatalf("unexpected defaults: %+v", policy)
	}
}

func TestCreatePolicyRejectsDuplicateNumber(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	if _, err := service.CreatePolicy(ctx, validInput()); err != nil {
		t.Fatalf("create policy: %v", err)
	}
	if _, err := service.CreatePolicy(ctx, validInput()); !errors.Is(err, ErrPolicyNumberTaken) {
		t.Fatalf("expected ErrPolicyNumberTaken, got %v", err)
	}
}

func TestCreatePolicyInsuredTargetMustMatchType(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	both := validInput()
	both.InsuredAssetID = int64Ptr(3)

	assetWithoutID := validInput()
	assetWithoutID.InsuredType = InsuredTypeAsset
	assetWithoutID.InsuredMemberID = nil

	memberWithoutID := validInput()
	memberWithoutID.InsuredMemberID = nil

	unknown := validInput()
	unknown.InsuredType = "Pet"

	for name, input := range map[string]PolicyInput{
		"both targets":      both,
		"asset missing id":  assetWithoutID,
		"member missing id": memberWithoutID,
		"unknown type":      unknown,
	} {
		if _, err := service.CreatePolicy(ctx, input); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("%s: expected ErrInvalidPolicy, got %v", name, err)
		}
	}

	asset := validInput()
	asset.InsuredType = InsuredTypeAsset
	asset.InsuredMemberID = nil
	asset.InsuredAssetID = int64Ptr(7)
	asset.Category = CategoryProperty
	if _, err := service.CreatePolicy(ctx, asset); err != nil {
		t.Fatalf("asset policy: %v", err)
	}
}

func TestCreatePolicyRequiredFields(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	mutations := map[string]func(*PolicyInput){
		"applicant":      func(in *PolicyInput) { in.ApplicantID = 0 },
		"category":       func(in *PolicyInput) { in.Category = "Pet" },
		"insurer name":   func(in *PolicyInput) { in.InsurerName = " " },
		"product name":   func(in *PolicyInput) { in.ProductName = "" },
		"policy number":  func(in *PolicyInput) { in.PolicyNumber = "" },
		"effective date": func(in *PolicyInput) { in.EffectiveDate = "" },
		"bad expiry":     func(in *PolicyInput) { in.ExpiryDate = strPtr("01/02/2030") },
		"bad status":     func(in *PolicyInput) { in.Status = "Expired" },
		"bad frequency":  func(in *PolicyInput) { in.PaymentFrequency = "Weekly" },
		"bad renewal":    func(in *PolicyInput) { in.RenewalType = strPtr("Never") },
	}
	for name, mutate := range mutations {
		input := validInput()
		mutate(&input)
		if _, err := service.CreatePolicy(ctx, input); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("%s: expected ErrInvalidPolicy, got %v", name, err)
		}
	}
}

func TestUpdatePolicyKeepsOwnNumber(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	created, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}
	input := validInput()
	input.Premium = 3500
	updated, err := service.UpdatePolicy(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("update policy: %v", err)
	}
	if updated.Premium != 3500 {
		t.Fatalf("expected premium 3500, got %v", updated.Premium)
	}
}

func TestDeletePolicyRemovesChildren(t *testing.T) {
	repo := newFakePolicyRepo()
	service := NewService(repo)
	ctx := context.Background()

	policy, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}
	if _, err := service.CreatePayment(ctx, policy.ID, PaymentInput{PeriodNumber: 1, DueDate: "2024-01-01", Amount: 3000}); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if _, err := service.CreateCoverageItem(ctx, policy.ID, CoverageItemInput{Name: "Inpatient"}); err != nil {
		t.Fatalf("create coverage item: %v", err)
	}

	if err := service.DeletePolicy(ctx, policy.ID); err != nil {
		t.Fatalf("delete policy: %v", err)
	}
	if len(repo.payments) != 0 || len(repo.items) != 0 {
		t.Fatalf("expected children removed, got %d payments %d items", len(repo.payments), len(repo.items))
	}
	if err := service.DeletePolicy(ctx, policy.ID); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestReplaceBeneficiariesValidation(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	policy, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}

	invalid := map[string]BeneficiaryInput{
		"no target":   {SharePercent: 50, RankOrder: 1},
		"two targets": {MemberID: int64Ptr(2), ExternalName: strPtr("Zed"), SharePercent: 50, RankOrder: 1},
		"zero share":  {MemberID: int64Ptr(2), SharePercent: 0, RankOrder: 1},
		"big share":   {MemberID: int64Ptr(2), SharePercent: 120, RankOrder: 1},
		"rank zero":   {MemberID: int64Ptr(2), SharePercent: 50},
	}
	for name, input := range invalid {
		if _, err := service.ReplaceBeneficiaries(ctx, policy.ID, []BeneficiaryInput{input}); !errors.Is(err, ErrInvalidBeneficiary) {
			t.Fatalf("%s: expected ErrInvalidBeneficiary, got %v", name, err)
		}
	}

	result, err := service.ReplaceBeneficiaries(ctx, policy.ID, []BeneficiaryInput{
		{MemberID: int64Ptr(2), SharePercent: 60, RankOrder: 1},
		{ExternalName: strPtr("Zed"), SharePercent: 40, RankOrder: 1},
	})
	if err != nil {
		t.Fatalf("replace beneficiaries: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 beneficiaries, got %d", len(result))
	}

	if _, err := service.ReplaceBeneficiaries(ctx, 999, nil); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestPaymentsListedNewestPeriodFirst(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	policy, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}
	for period := int64(1); period <= 3; period++ {
		if _, err := service.CreatePayment(ctx, policy.ID, PaymentInput{PeriodNumber: period, DueDate: "2024-01-01", Amount: 3000}); err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}

	payments, err := service.ListPayments(ctx, policy.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 3 || payments[0].PeriodNumber != 3 || payments[0].Status != PaymentPending {
		t.Fatalf("unexpected payments: %+v", payments)
	}

	if _, err := service.CreatePayment(ctx, policy.ID, PaymentInput{PeriodNumber: 4, DueDate: "tomorrow", Amount: 1}); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}
	if _, err := service.ListPayments(ctx, 404); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestReplaceCashValuesRejectsDuplicateYears(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	policy, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}

	_, err = service.ReplaceCashValues(ctx, policy.ID, []CashValueInput{{PolicyYear: 1, Value: 10}, {PolicyYear: 1, Value: 20}})
	if !errors.Is(err, ErrInvalidCashValue) {
		t.Fatalf("expected ErrInvalidCashValue, got %v", err)
	}

	values, err := service.ReplaceCashValues(ctx, policy.ID, []CashValueInput{{PolicyYear: 2, Value: 20}, {PolicyYear: 1, Value: 10}})
	if err != nil {
		t.Fatalf("replace cash values: %v", err)
	}
	if len(values) != 2 || values[0].PolicyYear != 1 {
		t.Fatalf("unexpected cash values: %+v", values)
	}
}

func TestSetExtensionRequiresObject(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	policy, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}

	for _, data := range []string{`[1,2]`, `"text"`, `null`, `{broken`} {
		if _, err := service.SetExtension(ctx, policy.ID, []byte(data)); !errors.Is(err, ErrInvalidExtension) {
			t.Fatalf("%s: expected ErrInvalidExtension, got %v", data, err)
		}
	}

	extension, err := service.SetExtension(ctx, policy.ID, []byte(`{"hospitalTier":"A"}`))
	if err != nil {
		t.Fatalf("set extension: %v", err)
	}
	if extension.Data != `{"hospitalTier":"A"}` {
		t.Fatalf("unexpected extension: %+v", extension)
	}
}

func TestCoverageItemLifecycle(t *testing.T) {
	service := NewService(newFakePolicyRepo())
	ctx := context.Background()

	policy, err := service.CreatePolicy(ctx, validInput())
	if err != nil {
		t.Fatalf("create policy: %v", err)
	}

	if _, err := service.CreateCoverageItem(ctx, policy.ID, CoverageItemInput{Name: " "}); !errors.Is(err, ErrInvalidCoverageItem) {
		t.Fatalf("expected ErrInvalidCoverageItem, got %v", err)
	}

	item, err := service.CreateCoverageItem(ctx, policy.ID, CoverageItemInput{Name: "Outpatient", SortOrder: 2})
	if err != nil {
		t.Fatalf("create coverage item: %v", err)
	}
	percent := 80.0
	updated, err := service.UpdateCoverageItem(ctx, policy.ID, item.ID, CoverageItemInput{Name: "Outpatient", CoveragePercent: &percent})
	if err != nil {
		t.Fatalf("update coverage item: %v", err)
	}
	if updated.CoveragePercent == nil || *updated.CoveragePercent != 80 {
		t.Fatalf("unexpected item: %+v", updated)
	}
	if _, err := service.GetCoverageItem(ctx, policy.ID+1, item.ID); !errors.Is(err, ErrCoverageItemNotFound) {
		t.Fatalf("expected ErrCoverageItemNotFound, got %v", err)
	}
	if err := service.DeleteCoverageItem(ctx, policy.ID, item.ID); err != nil {
		t.Fatalf("delete coverage item: %v", err)
	}
	if err := service.DeleteCoverageItem(ctx, policy.ID, item.ID); !errors.Is(err, ErrCoverageItemNotFound) {
		t.Fatalf("expected ErrCoverageItemNotFound, got %v", err)
	}
}

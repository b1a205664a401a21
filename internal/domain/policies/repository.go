package policies

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListPolicies(ctx context.Context) ([]Policy, error)
	GetPolicy(ctx context.Context, id int64) (*Policy, error)
	CountPoliciesByNumber(ctx context.Context, policyNumber string, excludeID int64) (int64, error)
	CreatePolicy(ctx context.Context, policy *Policy) error
	UpdatePolicy(ctx context.Context, policy *Policy) error
	DeletePolicy(ctx context.Context, id int64) (bool, error)
	DeletePolicyChildren(ctx context.Context, policyID int64) error

	ListBeneficiaries(ctx context.Context, policyID int64) ([]Beneficiary, error)
	ReplaceBeneficiaries(ctx context.Context, policyID int64, beneficiaries []Beneficiary) error

	ListPayments(ctx context.Context, policyID int64) ([]Payment, error)
	GetPayment(ctx context.Context, policyID, paymentID int64) (*Payment, error)
	CreatePayment(ctx context.Context, payment *Payment) error
	UpdatePayment(ctx context.Context, payment *Payment) error
	DeletePayment(ctx context.Context, policyID, paymentID int64) (bool, error)

	ListCashValues(ctx context.Context, policyID int64) ([]CashValue, error)
	ReplaceCashValues(ctx context.Context, policyID int64, values []CashValue) error

	GetExtension(ctx context.Context, policyID int64) (*Extension, error)
	UpsertExtension(ctx context.Context, extension *Extension) error

	ListCoverageItems(ctx context.Context, policyID int64) ([]CoverageItem, error)
	GetCoverageItem(ctx context.Context, policyID, itemID int64) (*CoverageItem, error)
	CreateCoverageItem(ctx context.Context, item *CoverageItem) error
	UpdateCoverageItem(ctx context.Context, item *CoverageItem) error
	DeleteCoverageItem(ctx context.Context, policyID, itemID int64) (bool, error)
}

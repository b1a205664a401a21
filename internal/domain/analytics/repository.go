package analytics

import (
	"context"

	"surety/internal/domain/assets"
	"surety/internal/domain/insurers"
	"surety/internal/domain/members"
	"surety/internal/domain/policies"
)

type MemberReader interface {
	ListMembers(ctx context.Context) ([]members.Member, error)
	GetMember(ctx context.Context, id int64) (*members.Member, error)
}

type PolicyReader interface {
	ListPolicies(ctx context.Context) ([]policies.Policy, error)
	GetPolicy(ctx context.Context, id int64) (*policies.Policy, error)
	ListBeneficiaries(ctx context.Context, policyID int64) ([]policies.Beneficiary, error)
	ListCoverageItems(ctx context.Context, policyID int64) ([]policies.CoverageItem, error)
}

type AssetReader interface {
	ListAssets(ctx context.Context) ([]assets.Asset, error)
	GetAsset(ctx context.Context, id int64) (*assets.Asset, error)
}

type InsurerReader interface {
	ListInsurers(ctx context.Context) ([]insurers.Insurer, error)
}

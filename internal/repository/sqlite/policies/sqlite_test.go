package policies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"surety/internal/db/dbtest"
	membersdomain "surety/internal/domain/members"
	policiesdomain "surety/internal/domain/policies"
	membersrepo "surety/internal/repository/sqlite/members"
)

func seedPolicy(t *testing.T, repo *SQLiteRepository, members *membersrepo.SQLiteRepository, number string) *policiesdomain.Policy {
	t.Helper()
	ctx := context.Background()

	member := &membersdomain.Member{Name: "Bob", Relation: membersdomain.RelationSelf}
	require.NoError(t, members.CreateMember(ctx, member))

	policy := &policiesdomain.Policy{
		ApplicantID:      member.ID,
		InsuredType:      policiesdomain.InsuredTypeMember,
		InsuredMemberID:  &member.ID,
		Category:         policiesdomain.CategoryLife,
		InsurerName:      "Ping An",
		ProductName:      "Term Life",
		PolicyNumber:     number,
		SumAssured:       1000000,
		Premium:          3000,
		PaymentFrequency: policiesdomain.FrequencyYearly,
		EffectiveDate:    "2024-01-01",
		Status:           policiesdomain.StatusActive,
	}
	require.NoError(t, repo.CreatePolicy(ctx, policy))
	return policy
}

func TestPolicyNumberTaken(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewSQLite(conn)
	members := membersrepo.NewSQLite(conn)

	policy := seedPolicy(t, repo, members, "P-001")

	duplicate := *policy
	duplicate.ID = 0
	err := repo.CreatePolicy(ctx, &duplicate)
	assert.ErrorIs(t, err, policiesdomain.ErrPolicyNumberTaken)

	count, err := repo.CountPoliciesByNumber(ctx, "P-001", policy.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPaymentsScopedToPolicy(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewSQLite(conn)
	members := membersrepo.NewSQLite(conn)

	first := seedPolicy(t, repo, members, "P-001")
	second := seedPolicy(t, repo, members, "P-002")

	for period := int64(1); period <= 3; period++ {
		require.NoError(t, repo.CreatePayment(ctx, &policiesdomain.Payment{
			PolicyID:     first.ID,
			PeriodNumber: period,
			DueDate:      "2024-01-01",
			Amount:       3000,
			Status:       policiesdomain.PaymentPending,
		}))
	}

	payments, err := repo.ListPayments(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.EqualValues(t, 3, payments[0].PeriodNumber)

	_, err = repo.GetPayment(ctx, second.ID, payments[0].ID)
	assert.ErrorIs(t, err, policiesdomain.ErrPaymentNotFound)

	deleted, err := repo.DeletePayment(ctx, second.ID, payments[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestExtensionUpsert(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewSQLite(conn)
	policy := seedPolicy(t, repo, membersrepo.NewSQLite(conn), "P-001")

	_, err := repo.GetExtension(ctx, policy.ID)
	assert.ErrorIs(t, err, policiesdomain.ErrExtensionNotFound)

	require.NoError(t, repo.UpsertExtension(ctx, &policiesdomain.Extension{PolicyID: policy.ID, Data: `{"hospital":"any"}`}))
	require.NoError(t, repo.UpsertExtension(ctx, &policiesdomain.Extension{PolicyID: policy.ID, Data: `{"hospital":"public"}`}))

	got, err := repo.GetExtension(ctx, policy.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hospital":"public"}`, got.Data)
}

func TestDeletePolicyChildren(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewSQLite(conn)
	policy := seedPolicy(t, repo, membersrepo.NewSQLite(conn), "P-001")

	name := "Carol"
	require.NoError(t, repo.ReplaceBeneficiaries(ctx, policy.ID, []policiesdomain.Beneficiary{
		{PolicyID: policy.ID, ExternalName: &name, SharePercent: 100, RankOrder: 1},
	}))
	require.NoError(t, repo.ReplaceCashValues(ctx, policy.ID, []policiesdomain.CashValue{
		{PolicyID: policy.ID, PolicyYear: 1, Value: 500},
		{PolicyID: policy.ID, PolicyYear: 2, Value: 1500},
	}))
	require.NoError(t, repo.CreateCoverageItem(ctx, &policiesdomain.CoverageItem{PolicyID: policy.ID, Name: "Inpatient"}))
	require.NoError(t, repo.UpsertExtension(ctx, &policiesdomain.Extension{PolicyID: policy.ID, Data: `{}`}))

	err := repo.Transaction(ctx, func(tx policiesdomain.Repository) error {
		if err := tx.DeletePolicyChildren(ctx, policy.ID); err != nil {
			return err
		}
		_, err := tx.DeletePolicy(ctx, policy.ID)
		return err
	})
	require.NoError(t, err)

	beneficiaries, err := repo.ListBeneficiaries(ctx, policy.ID)
	require.NoError(t, err)
	assert.Empty(t, beneficiaries)

	values, err := repo.ListCashValues(ctx, policy.ID)
	require.NoError(t, err)
	assert.Empty(t, values)

	items, err := repo.ListCoverageItems(ctx, policy.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.GetPolicy(ctx, policy.ID)
	assert.ErrorIs(t, err, policiesdomain.ErrPolicyNotFound)
}

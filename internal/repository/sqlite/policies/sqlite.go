package policies

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"surety/internal/db"
	policiesdomain "surety/internal/domain/policies"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Transaction(ctx context.Context, fn func(policiesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLiteRepository{db: tx})
	})
}

func (r *SQLiteRepository) ListPolicies(ctx context.Context) ([]policiesdomain.Policy, error) {
	var policies []policiesdomain.Policy
	if err := r.db.WithContext(ctx).Order("id asc").Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *SQLiteRepository) GetPolicy(ctx context.Context, id int64) (*policiesdomain.Policy, error) {
	var policy policiesdomain.Policy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policiesdomain.ErrPolicyNotFound
		}
		return nil, err
	}
	return &policy, nil
}

func (r *SQLiteRepository) CountPoliciesByNumber(ctx context.Context, policyNumber string, excludeID int64) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&policiesdomain.Policy{}).Where("policy_number = ?", policyNumber)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLiteRepository) CreatePolicy(ctx context.Context, policy *policiesdomain.Policy) error {
	return mapPolicyErr(r.db.WithContext(ctx).Create(policy).Error)
}

func (r *SQLiteRepository) UpdatePolicy(ctx context.Context, policy *policiesdomain.Policy) error {
	return mapPolicyErr(r.db.WithContext(ctx).Save(policy).Error)
}

func (r *SQLiteRepository) DeletePolicy(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&policiesdomain.Policy{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeletePolicyChildren removes every row that references the policy.
func (r *SQLiteRepository) DeletePolicyChildren(ctx context.Context, policyID int64) error {
	children := []any{
		&policiesdomain.Extension{},
		&policiesdomain.CoverageItem{},
		&policiesdomain.CashValue{},
		&policiesdomain.Payment{},
		&policiesdomain.Beneficiary{},
	}
	for _, model := range children {
		if err := r.db.WithContext(ctx).Where("policy_id = ?", policyID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) ListBeneficiaries(ctx context.Context, policyID int64) ([]policiesdomain.Beneficiary, error) {
	var beneficiaries []policiesdomain.Beneficiary
	if err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("rank_order asc, id asc").
		Find(&beneficiaries).Error; err != nil {
		return nil, err
	}
	return beneficiaries, nil
}

func (r *SQLiteRepository) ReplaceBeneficiaries(ctx context.Context, policyID int64, beneficiaries []policiesdomain.Beneficiary) error {
	if err := r.db.WithContext(ctx).Where("policy_id = ?", policyID).Delete(&policiesdomain.Beneficiary{}).Error; err != nil {
		return err
	}
	if len(beneficiaries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&beneficiaries).Error
}

func (r *SQLiteRepository) ListPayments(ctx context.Context, policyID int64) ([]policiesdomain.Payment, error) {
	var payments []policiesdomain.Payment
	if err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("period_number desc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *SQLiteRepository) GetPayment(ctx context.Context, policyID, paymentID int64) (*policiesdomain.Payment, error) {
	var payment policiesdomain.Payment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND policy_id = ?", paymentID, policyID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policiesdomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *SQLiteRepository) CreatePayment(ctx context.Context, payment *policiesdomain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *SQLiteRepository) UpdatePayment(ctx context.Context, payment *policiesdomain.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *SQLiteRepository) DeletePayment(ctx context.Context, policyID, paymentID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND policy_id = ?", paymentID, policyID).
		Delete(&policiesdomain.Payment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SQLiteRepository) ListCashValues(ctx context.Context, policyID int64) ([]policiesdomain.CashValue, error) {
	var values []policiesdomain.CashValue
	if err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("policy_year asc").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *SQLiteRepository) ReplaceCashValues(ctx context.Context, policyID int64, values []policiesdomain.CashValue) error {
	if err := r.db.WithContext(ctx).Where("policy_id = ?", policyID).Delete(&policiesdomain.CashValue{}).Error; err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&values).Error
}

func (r *SQLiteRepository) GetExtension(ctx context.Context, policyID int64) (*policiesdomain.Extension, error) {
	var extension policiesdomain.Extension
	if err := r.db.WithContext(ctx).Where("policy_id = ?", policyID).First(&extension).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policiesdomain.ErrExtensionNotFound
		}
		return nil, err
	}
	return &extension, nil
}

func (r *SQLiteRepository) UpsertExtension(ctx context.Context, extension *policiesdomain.Extension) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "policy_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(extension).Error
}

func (r *SQLiteRepository) ListCoverageItems(ctx context.Context, policyID int64) ([]policiesdomain.CoverageItem, error) {
	var items []policiesdomain.CoverageItem
	if err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("sort_order asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLiteRepository) GetCoverageItem(ctx context.Context, policyID, itemID int64) (*policiesdomain.CoverageItem, error) {
	var item policiesdomain.CoverageItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND policy_id = ?", itemID, policyID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policiesdomain.ErrCoverageItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepository) CreateCoverageItem(ctx context.Context, item *policiesdomain.CoverageItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *SQLiteRepository) UpdateCoverageItem(ctx context.Context, item *policiesdomain.CoverageItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *SQLiteRepository) DeleteCoverageItem(ctx context.Context, policyID, itemID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND policy_id = ?", itemID, policyID).
		Delete(&policiesdomain.CoverageItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func mapPolicyErr(err error) error {
	if db.IsUniqueViolation(err) {
		return policiesdomain.ErrPolicyNumberTaken
	}
	return err
}

package insurers

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"surety/internal/db"
	insurersdomain "surety/internal/domain/insurers"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListInsurers(ctx context.Context) ([]insurersdomain.Insurer, error) {
	var insurers []insurersdomain.Insurer
	if err := r.db.WithContext(ctx).Order("name asc").Find(&insurers).Error; err != nil {
		return nil, err
	}
	return insurers, nil
}

func (r *SQLiteRepository) GetInsurer(ctx context.Context, id int64) (*insurersdomain.Insurer, error) {
	var insurer insurersdomain.Insurer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&insurer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, insurersdomain.ErrInsurerNotFound
		}
		return nil, err
	}
	return &insurer, nil
}

func (r *SQLiteRepository) CountInsurersByName(ctx context.Context, name string, excludeID int64) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&insurersdomain.Insurer{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLiteRepository) CreateInsurer(ctx context.Context, insurer *insurersdomain.Insurer) error {
	return mapUniqueErr(r.db.WithContext(ctx).Create(insurer).Error)
}

func (r *SQLiteRepository) UpdateInsurer(ctx context.Context, insurer *insurersdomain.Insurer) error {
	return mapUniqueErr(r.db.WithContext(ctx).Save(insurer).Error)
}

func (r *SQLiteRepository) DeleteInsurer(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&insurersdomain.Insurer{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func mapUniqueErr(err error) error {
	if db.IsUniqueViolation(err) {
		return insurersdomain.ErrInsurerNameTaken
	}
	return err
}

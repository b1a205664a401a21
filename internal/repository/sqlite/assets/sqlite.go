package assets

import (
	"context"
	"errors"

	"gorm.io/gorm"
	assetsdomain "surety/internal/domain/assets"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListAssets(ctx context.Context) ([]assetsdomain.Asset, error) {
	var assets []assetsdomain.Asset
	if err := r.db.WithContext(ctx).Order("id asc").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *SQLiteRepository) GetAsset(ctx context.Context, id int64) (*assetsdomain.Asset, error) {
	var asset assetsdomain.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assetsdomain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *SQLiteRepository) CreateAsset(ctx context.Context, asset *assetsdomain.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *SQLiteRepository) UpdateAsset(ctx context.Context, asset *assetsdomain.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *SQLiteRepository) DeleteAsset(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&assetsdomain.Asset{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

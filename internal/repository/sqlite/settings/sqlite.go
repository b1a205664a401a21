package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	settingsdomain "surety/internal/domain/settings"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListSettings(ctx context.Context) ([]settingsdomain.Setting, error) {
	var settings []settingsdomain.Setting
	if err := r.db.WithContext(ctx).Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (*settingsdomain.Setting, error) {
	var setting settingsdomain.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settingsdomain.ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *SQLiteRepository) UpsertSetting(ctx context.Context, setting *settingsdomain.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

func (r *SQLiteRepository) DeleteSetting(ctx context.Context, key string) (bool, error) {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&settingsdomain.Setting{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

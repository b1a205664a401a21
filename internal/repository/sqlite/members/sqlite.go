package members

import (
	"context"
	"errors"

	"gorm.io/gorm"
	membersdomain "surety/internal/domain/members"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListMembers(ctx context.Context) ([]membersdomain.Member, error) {
	var members []membersdomain.Member
	if err := r.db.WithContext(ctx).Order("id asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *SQLiteRepository) GetMember(ctx context.Context, id int64) (*membersdomain.Member, error) {
	var member membersdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membersdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *SQLiteRepository) CreateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *SQLiteRepository) UpdateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *SQLiteRepository) DeleteMember(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&membersdomain.Member{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

package repository

import (
	"movie_tracker_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type InviteRepository struct {
	DB *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{DB: db}
}

func (r *InviteRepository) Create(tx *gorm.DB, code *model.InviteCode) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(code).Error
}

func (r *InviteRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.InviteCode{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *InviteRepository) FindByCode(tx *gorm.DB, code string) (*model.InviteCode, error) {
	if tx == nil {
		tx = r.DB
	}
	var invite model.InviteCode
	err := tx.Where("code = ?", code).First(&invite).Error
	return &invite, err
}

// MarkUsed 条件更新消费邀请码，used_by 已写入时影响行数为 0
// 并发兑换同一码时由该条件仲裁，先写者胜出
func (r *InviteRepository) MarkUsed(tx *gorm.DB, id string, userID uint) (bool, error) {
	if tx == nil {
		tx = r.DB
	}
	now := time.Now()
	res := tx.Model(&model.InviteCode{}).
		Where("id = ? AND used_by_id IS NULL", id).
		Updates(map[string]interface{}{
			"used_by_id": userID,
			"used_at":    now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *InviteRepository) ListByIssuer(userID uint) ([]model.InviteCode, error) {
	var codes []model.InviteCode
	err := r.DB.Preload("UsedBy").
		Where("generated_by_id = ?", userID).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

func (r *InviteRepository) CountUnusedByIssuer(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.InviteCode{}).
		Where("generated_by_id = ? AND used_by_id IS NULL", userID).
		Count(&count).Error
	return count, err
}

package repository

import (
	"errors"
	"movie_tracker_backend/internal/model"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewingRepository struct {
	DB *gorm.DB
}

func NewViewingRepository(db *gorm.DB) *ViewingRepository {
	return &ViewingRepository{DB: db}
}

// IsDuplicateKeyErr 唯一约束冲突判定，兼容 MySQL 与 SQLite 的报错文本
func IsDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// GetOrCreate 写入一条评分记录；(user_id, movie_id) 唯一约束负责并发仲裁
// 撞到约束时读取先写者的记录回填 view 并返回 created=false，不报错
func (r *ViewingRepository) GetOrCreate(tx *gorm.DB, view *model.UserMovieView) (bool, error) {
	if tx == nil {
		tx = r.DB
	}

	if err := tx.Create(view).Error; err != nil {
		if !IsDuplicateKeyErr(err) {
			return false, err
		}
		// MySQL REPEATABLE READ 下快照可能看不到先写者刚提交的行，
		// 加锁读才能拿到最新版本；SQLite 没有 FOR UPDATE 语法
		readBack := tx
		if tx.Dialector.Name() == "mysql" {
			readBack = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var existing model.UserMovieView
		if ferr := readBack.Where("user_id = ? AND movie_id = ?", view.UserID, view.MovieID).
			First(&existing).Error; ferr != nil {
			return false, err
		}
		*view = existing
		return false, nil
	}
	return true, nil
}

func (r *ViewingRepository) FindByID(id uint) (*model.UserMovieView, error) {
	var view model.UserMovieView
	err := r.DB.First(&view, id).Error
	return &view, err
}

func (r *ViewingRepository) UpdateHasSeen(id uint, hasSeen bool) error {
	return r.DB.Model(&model.UserMovieView{}).
		Where("id = ?", id).
		Update("has_seen", hasSeen).
		Error
}

// CountForUser 用户全部评分记录数（已看+未看），里程碑以此为准
func (r *ViewingRepository) CountForUser(tx *gorm.DB, userID uint) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	var count int64
	err := tx.Model(&model.UserMovieView{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ViewingRepository) CountSeenForUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserMovieView{}).
		Where("user_id = ? AND has_seen = ?", userID, true).
		Count(&count).Error
	return count, err
}

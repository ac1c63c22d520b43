package repository

import (
	"movie_tracker_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateWithProfile 创建账号与扩展资料，可运行于外层事务内
// 显式的注册工作流，账号/资料不依赖任何保存钩子
func (r *UserRepository) CreateWithProfile(tx *gorm.DB, user *model.User, profile *model.Profile) error {
	if tx == nil {
		tx = r.DB
	}
	if err := tx.Create(user).Error; err != nil {
		return err
	}
	profile.UserID = user.ID
	return tx.Create(profile).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) GetProfile(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *UserRepository) UpdateAvatar(userID uint, url string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar", url).
		Error
}

// TouchLastActivity 更新资料的最后活跃时间，可运行于外层事务内
func (r *UserRepository) TouchLastActivity(tx *gorm.DB, userID uint, at time.Time) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("last_activity", at).
		Error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/util"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService 用户资料维护
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

// GetProfile 返回账号与扩展资料
func (s *UserService) GetProfile(userID uint) (*model.User, *model.Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}
	profile, err := s.UserRepo.GetProfile(userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// UpdateProfile 更新可编辑字段，空值字段不变
func (s *UserService) UpdateProfile(userID uint, name string, dateOfBirth *time.Time) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
	}

	if dateOfBirth != nil {
		if err := s.UserRepo.DB.Model(&model.Profile{}).
			Where("user_id = ?", userID).
			Update("date_of_birth", dateOfBirth).Error; err != nil {
			return nil, err
		}
	}

	return user, nil
}

// UploadAvatar 上传头像并更新用户记录，返回可访问的URL
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("unsupported avatar format: %s", ext)
	}

	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}

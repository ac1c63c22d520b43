package service

import (
	"errors"
	"movie_tracker_backend/internal/config"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Invites  *InviteService
	Cfg      *config.Config
	DB       *gorm.DB
}

func NewAuthService(userRepo *repository.UserRepository, invites *InviteService, cfg *config.Config, db *gorm.DB) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Invites:  invites,
		Cfg:      cfg,
		DB:       db,
	}
}

// Register 注册：账号、资料以及可选的邀请码兑换在同一事务内完成
// 邀请码无效/已用会令注册整体失败
func (s *AuthService) Register(user *model.User, profile *model.Profile, inviteCode string) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.UserRepo.CreateWithProfile(tx, user, profile); err != nil {
			return err
		}
		if inviteCode != "" {
			if _, err := s.Invites.RedeemTx(tx, inviteCode, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if user.Disabled {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}

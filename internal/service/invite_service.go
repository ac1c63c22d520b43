package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"movie_tracker_backend/internal/config"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/util"

	"gorm.io/gorm"
)

// 邀请码字符集，去掉易混淆的 0/O/1/I
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type InviteService struct {
	InviteRepo *repository.InviteRepository
	FriendRepo *repository.FriendshipRepository
	Cfg        *config.Config
	DB         *gorm.DB
}

func NewInviteService(inviteRepo *repository.InviteRepository, friendRepo *repository.FriendshipRepository, cfg *config.Config, db *gorm.DB) *InviteService {
	return &InviteService{
		InviteRepo: inviteRepo,
		FriendRepo: friendRepo,
		Cfg:        cfg,
		DB:         db,
	}
}

func (s *InviteService) randomCode() (string, error) {
	buf := make([]byte, s.Cfg.Invite.CodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateCode 为签发者生成唯一邀请码，撞唯一索引时换码重试
func (s *InviteService) GenerateCode(issuerID uint) (*model.InviteCode, error) {
	return s.generateCode(nil, issuerID)
}

func (s *InviteService) generateCode(tx *gorm.DB, issuerID uint) (*model.InviteCode, error) {
	var lastErr error
	for i := 0; i < s.Cfg.Invite.MaxRetries; i++ {
		code, err := s.randomCode()
		if err != nil {
			return nil, err
		}

		invite := &model.InviteCode{
			Code:          code,
			GeneratedByID: &issuerID,
		}
		if err := s.InviteRepo.Create(tx, invite); err != nil {
			if repository.IsDuplicateKeyErr(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return invite, nil
	}
	return nil, lastErr
}

// GrantCodes 里程碑奖励发码，运行于评分写入事务内，失败向上传递令整个事务回滚
func (s *InviteService) GrantCodes(tx *gorm.DB, issuerID uint, n int) ([]string, error) {
	codes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		invite, err := s.generateCode(tx, issuerID)
		if err != nil {
			return nil, err
		}
		codes = append(codes, invite.Code)
	}
	return codes, nil
}

// Redeem 兑换邀请码：写入 used_by 并与签发者建立双向好友关系，单事务完成
func (s *InviteService) Redeem(code string, userID uint) (*model.InviteCode, error) {
	var invite *model.InviteCode
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		invite, err = s.RedeemTx(tx, code, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invite, nil
}

// RedeemTx 在外层事务内兑换（注册时附带邀请码的场景）
func (s *InviteService) RedeemTx(tx *gorm.DB, code string, userID uint) (*model.InviteCode, error) {
	invite, err := s.InviteRepo.FindByCode(tx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidInviteCode
		}
		return nil, err
	}

	if invite.UsedByID != nil {
		return nil, util.ErrInviteCodeUsed
	}
	if invite.GeneratedByID != nil && *invite.GeneratedByID == userID {
		// 自己的码不能自己兑换
		return nil, util.ErrInvalidInviteCode
	}

	ok, err := s.InviteRepo.MarkUsed(tx, invite.ID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 条件更新未命中：另一并发兑换已先写入
		return nil, util.ErrInviteCodeUsed
	}

	if invite.GeneratedByID != nil {
		if err := s.FriendRepo.CreateAcceptedPair(tx, *invite.GeneratedByID, userID); err != nil {
			return nil, err
		}
	}

	return s.InviteRepo.FindByCode(tx, code)
}

func (s *InviteService) ListByIssuer(userID uint) ([]model.InviteCode, error) {
	return s.InviteRepo.ListByIssuer(userID)
}

package service

import (
	"errors"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/util"

	"gorm.io/gorm"
)

type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
	}
}

// SendRequest 发起好友申请
// 同方向已有边时为幂等空操作；对方已发过待处理申请时直接按接受处理
func (s *FriendshipService) SendRequest(senderID, receiverID uint, message string) (*model.Friendship, error) {
	if senderID == receiverID {
		return nil, util.ErrSelfFriendRequest
	}

	if _, err := s.UserRepo.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	existing, err := s.FriendRepo.GetEdge(senderID, receiverID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reverse, err := s.FriendRepo.GetEdge(receiverID, senderID)
	if err == nil {
		switch reverse.Status {
		case model.FriendshipPending:
			// 对方已经申请过了，互相申请视为接受
			if err := s.FriendRepo.AcceptWithMirror(reverse); err != nil {
				return nil, err
			}
			return s.FriendRepo.GetEdge(senderID, receiverID)
		case model.FriendshipAccepted:
			return nil, util.ErrAlreadyFriends
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	edge := &model.Friendship{
		UserID:   senderID,
		FriendID: receiverID,
		Message:  message,
	}
	if err := s.FriendRepo.CreatePending(edge); err != nil {
		// 并发重复提交撞唯一索引，读回已有边
		if repository.IsDuplicateKeyErr(err) {
			return s.FriendRepo.GetEdge(senderID, receiverID)
		}
		return nil, err
	}
	return edge, nil
}

// AcceptRequest 接受申请，镜像边在同一事务内补齐
// 只有申请的接收方可以接受；重复接受为幂等空操作
func (s *FriendshipService) AcceptRequest(edgeID, userID uint) (*model.Friendship, error) {
	edge, err := s.FriendRepo.GetByID(edgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRequestNotFound
		}
		return nil, err
	}

	if edge.FriendID != userID {
		return nil, util.ErrPermissionDenied
	}

	if edge.Status == model.FriendshipAccepted {
		return edge, nil
	}

	if err := s.FriendRepo.AcceptWithMirror(edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// DeclineRequest 拒绝申请，只有接收方可操作，删除该条待处理边
func (s *FriendshipService) DeclineRequest(edgeID, userID uint) error {
	edge, err := s.FriendRepo.GetByID(edgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRequestNotFound
		}
		return err
	}

	if edge.FriendID != userID {
		return util.ErrPermissionDenied
	}
	if edge.Status != model.FriendshipPending {
		return util.ErrRequestHandled
	}

	return s.FriendRepo.DeleteEdge(edge.ID)
}

// CancelRequest 撤回申请，只有发起方可操作
func (s *FriendshipService) CancelRequest(edgeID, userID uint) error {
	edge, err := s.FriendRepo.GetByID(edgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRequestNotFound
		}
		return err
	}

	if edge.UserID != userID {
		return util.ErrPermissionDenied
	}
	if edge.Status != model.FriendshipPending {
		return util.ErrRequestHandled
	}

	return s.FriendRepo.DeleteEdge(edge.ID)
}

// RemoveFriend 解除两人之间的关系：无论边处于什么状态，两个方向一并删除
func (s *FriendshipService) RemoveFriend(userID, otherID uint) error {
	_, err := s.FriendRepo.GetEdge(userID, otherID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, rerr := s.FriendRepo.GetEdge(otherID, userID); rerr != nil {
			if errors.Is(rerr, gorm.ErrRecordNotFound) {
				return util.ErrFriendshipNotFound
			}
			return rerr
		}
	}
	return s.FriendRepo.DeleteFriendship(userID, otherID)
}

// Status 一对用户的关系状态，四种结果互斥
func (s *FriendshipService) Status(viewerID, targetID uint) (model.PairStatus, error) {
	forward, err := s.FriendRepo.GetEdge(viewerID, targetID)
	if err == nil {
		if forward.Status == model.FriendshipAccepted {
			return model.PairFriends, nil
		}
		return model.PairRequestSent, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	reverse, err := s.FriendRepo.GetEdge(targetID, viewerID)
	if err == nil {
		if reverse.Status == model.FriendshipPending {
			return model.PairRequestReceived, nil
		}
		// 镜像边单独 accepted 属于不变量被破坏，按无关系处理
		return model.PairNotFriends, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return model.PairNotFriends, nil
}

func (s *FriendshipService) GetFriends(userID uint, query string) ([]model.User, error) {
	return s.FriendRepo.GetFriends(userID, query)
}

func (s *FriendshipService) GetPendingReceived(userID uint) ([]model.Friendship, error) {
	return s.FriendRepo.GetPendingReceived(userID)
}

func (s *FriendshipService) GetPendingSent(userID uint) ([]model.Friendship, error) {
	return s.FriendRepo.GetPendingSent(userID)
}

// FuzzySearchUsers 模糊搜索用户，用于发起好友申请前的查找
func (s *FriendshipService) FuzzySearchUsers(query string) ([]model.User, error) {
	var users []model.User
	searchTerm := "%" + query + "%"
	err := s.UserRepo.DB.Select("id, name, email, avatar").
		Where("disabled = ?", false).
		Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm).
		Limit(20).
		Find(&users).Error
	return users, err
}

package service

import (
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"time"
)

// Dashboard 个人统计面板
// 里程碑进度由台账计数实时推导，不落库
type Dashboard struct {
	User          *model.User `json:"user"`
	SeenCount     int64       `json:"seenCount"`
	TotalRated    int64       `json:"totalRated"`
	FriendCount   int64       `json:"friendCount"`
	UnusedInvites int64       `json:"unusedInvites"`
	NextMilestone int64       `json:"nextMilestone"`
	LastActivity  time.Time   `json:"lastActivity"`
}

type DashboardService struct {
	UserRepo    *repository.UserRepository
	ViewingRepo *repository.ViewingRepository
	FriendRepo  *repository.FriendshipRepository
	InviteRepo  *repository.InviteRepository
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	viewingRepo *repository.ViewingRepository,
	friendRepo *repository.FriendshipRepository,
	inviteRepo *repository.InviteRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:    userRepo,
		ViewingRepo: viewingRepo,
		FriendRepo:  friendRepo,
		InviteRepo:  inviteRepo,
	}
}

func (s *DashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.UserRepo.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	seenCount, err := s.ViewingRepo.CountSeenForUser(userID)
	if err != nil {
		return nil, err
	}

	totalRated, err := s.ViewingRepo.CountForUser(nil, userID)
	if err != nil {
		return nil, err
	}

	friendCount, err := s.FriendRepo.CountFriends(userID)
	if err != nil {
		return nil, err
	}

	unusedInvites, err := s.InviteRepo.CountUnusedByIssuer(userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		User:          user,
		SeenCount:     seenCount,
		TotalRated:    totalRated,
		FriendCount:   friendCount,
		UnusedInvites: unusedInvites,
		NextMilestone: NextMilestone(totalRated),
		LastActivity:  profile.LastActivity,
	}, nil
}

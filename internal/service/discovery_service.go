package service

import (
	"errors"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// DiscoveryFilters 选片过滤条件，回退抽样时依然生效
type DiscoveryFilters struct {
	GenreID     uint
	PersonQuery string
}

// DiscoveryService 推荐选片与评分台账
type DiscoveryService struct {
	MovieRepo   *repository.MovieRepository
	ViewingRepo *repository.ViewingRepository
	UserRepo    *repository.UserRepository
	Invites     *InviteService
	Selector    *WeightedSelector
	DB          *gorm.DB
}

func NewDiscoveryService(
	movieRepo *repository.MovieRepository,
	viewingRepo *repository.ViewingRepository,
	userRepo *repository.UserRepository,
	invites *InviteService,
	db *gorm.DB,
) *DiscoveryService {
	return &DiscoveryService{
		MovieRepo:   movieRepo,
		ViewingRepo: viewingRepo,
		UserRepo:    userRepo,
		Invites:     invites,
		Selector:    NewWeightedSelector(),
		DB:          db,
	}
}

// SelectNext 为用户抽取下一部未看影片，候选集耗尽时返回 (nil, nil)
func (s *DiscoveryService) SelectNext(userID uint, filters DiscoveryFilters) (*model.Movie, error) {
	candidates, err := s.MovieRepo.UnseenForUser(userID, filters.GenreID, filters.PersonQuery)
	if err != nil {
		return nil, err
	}

	picked := s.Selector.Pick(candidates)
	if picked == nil {
		return nil, nil
	}

	// 重新读取以带出类型与演职人员
	return s.MovieRepo.FindByID(picked.ID)
}

// RecordView 记录一次滑动决定
// 首次创建时更新最后活跃时间并同步评估里程碑，全部写入在同一事务内；
// 并发重复写入退化为读取既有记录，created=false，无里程碑副作用
func (s *DiscoveryService) RecordView(userID, movieID uint, hasSeen bool) (*model.UserMovieView, bool, []MilestoneEvent, error) {
	view := &model.UserMovieView{
		UserID:  userID,
		MovieID: movieID,
		HasSeen: hasSeen,
	}

	var created bool
	var events []MilestoneEvent

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var movie model.Movie
		if err := tx.First(&movie, movieID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrMovieNotFound
			}
			return err
		}

		var err error
		created, err = s.ViewingRepo.GetOrCreate(tx, view)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		if err := s.UserRepo.TouchLastActivity(tx, userID, time.Now()); err != nil {
			return err
		}

		count, err := s.ViewingRepo.CountForUser(tx, userID)
		if err != nil {
			return err
		}

		grants := InviteGrantsForCount(count)
		if grants > 0 {
			codes, err := s.Invites.GrantCodes(tx, userID, grants)
			if err != nil {
				// 发码失败不可吞掉，整个事务回滚
				return err
			}
			events = append(events, MilestoneEvent{Count: count, Codes: codes})
		}
		return nil
	})
	if err != nil {
		return nil, false, nil, err
	}

	return view, created, events, nil
}

// UpdateRating 修正既有评分记录，只允许记录归属者操作
// 修正不触发里程碑
func (s *DiscoveryService) UpdateRating(userID, viewID uint, hasSeen bool) (*model.UserMovieView, error) {
	view, err := s.ViewingRepo.FindByID(viewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrViewNotFound
		}
		return nil, err
	}

	if view.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	if err := s.ViewingRepo.UpdateHasSeen(view.ID, hasSeen); err != nil {
		return nil, err
	}
	view.HasSeen = hasSeen
	return view, nil
}

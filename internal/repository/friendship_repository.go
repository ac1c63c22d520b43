package repository

import (
	"context"
	"errors"
	"fmt"
	"movie_tracker_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *FriendshipRepository) invalidateCache(userIDs ...uint) {
	if r.Redis == nil {
		return
	}
	for _, id := range userIDs {
		r.Redis.Del(r.ctx, fmt.Sprintf("social:relation:friends:%d", id))
	}
}

func (r *FriendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var edge model.Friendship
	err := r.DB.First(&edge, id).Error
	return &edge, err
}

// GetEdge 查询指定方向的边，不存在时返回 gorm.ErrRecordNotFound
func (r *FriendshipRepository) GetEdge(userID, friendID uint) (*model.Friendship, error) {
	var edge model.Friendship
	err := r.DB.Where("user_id = ? AND friend_id = ?", userID, friendID).First(&edge).Error
	return &edge, err
}

func (r *FriendshipRepository) CreatePending(edge *model.Friendship) error {
	edge.Status = model.FriendshipPending
	return r.DB.Create(edge).Error
}

// AcceptWithMirror 接受申请：本方向置为 accepted 并补齐镜像边，同一事务内完成
// 两条边要么都写成功，要么都不写
func (r *FriendshipRepository) AcceptWithMirror(edge *model.Friendship) error {
	now := time.Now()
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Friendship{}).
			Where("id = ?", edge.ID).
			Updates(map[string]interface{}{
				"status":      model.FriendshipAccepted,
				"accepted_at": now,
			}).Error; err != nil {
			return err
		}

		var mirror model.Friendship
		ferr := tx.Where("user_id = ? AND friend_id = ?", edge.FriendID, edge.UserID).
			First(&mirror).Error
		if errors.Is(ferr, gorm.ErrRecordNotFound) {
			mirror = model.Friendship{
				UserID:     edge.FriendID,
				FriendID:   edge.UserID,
				Status:     model.FriendshipAccepted,
				AcceptedAt: &now,
			}
			return tx.Create(&mirror).Error
		}
		if ferr != nil {
			return ferr
		}
		return tx.Model(&model.Friendship{}).
			Where("id = ?", mirror.ID).
			Updates(map[string]interface{}{
				"status":      model.FriendshipAccepted,
				"accepted_at": now,
			}).Error
	})

	if err == nil {
		edge.Status = model.FriendshipAccepted
		edge.AcceptedAt = &now
		r.invalidateCache(edge.UserID, edge.FriendID)
	}
	return err
}

// CreateAcceptedPair 直接建立双向 accepted 关系（邀请码兑换），可运行于外层事务内
func (r *FriendshipRepository) CreateAcceptedPair(tx *gorm.DB, userID, friendID uint) error {
	if tx == nil {
		tx = r.DB
	}
	now := time.Now()
	for _, pair := range [][2]uint{{userID, friendID}, {friendID, userID}} {
		var edge model.Friendship
		err := tx.Where("user_id = ? AND friend_id = ?", pair[0], pair[1]).First(&edge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			edge = model.Friendship{
				UserID:     pair[0],
				FriendID:   pair[1],
				Status:     model.FriendshipAccepted,
				AcceptedAt: &now,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if edge.Status != model.FriendshipAccepted {
			if err := tx.Model(&model.Friendship{}).
				Where("id = ?", edge.ID).
				Updates(map[string]interface{}{
					"status":      model.FriendshipAccepted,
					"accepted_at": now,
				}).Error; err != nil {
				return err
			}
		}
	}
	r.invalidateCache(userID, friendID)
	return nil
}

// DeleteEdge 删除单条边（拒绝/撤回待处理申请）
func (r *FriendshipRepository) DeleteEdge(id uint) error {
	return r.DB.Unscoped().Where("id = ?", id).Delete(&model.Friendship{}).Error
}

// DeleteFriendship 解除好友：两个方向的边一并删除
func (r *FriendshipRepository) DeleteFriendship(userID, friendID uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&model.Friendship{}).Error
	})

	if err == nil {
		r.invalidateCache(userID, friendID)
	}
	return err
}

func (r *FriendshipRepository) IsFriend(userID, friendID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", userID, friendID, model.FriendshipAccepted).
		Count(&count).Error
	return count > 0, err
}

func (r *FriendshipRepository) GetFriends(userID uint, query string) ([]model.User, error) {
	var friends []model.User
	db := r.DB.Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ? AND friendships.status = ?", userID, model.FriendshipAccepted)

	if query != "" {
		searchTerm := "%" + query + "%"
		db = db.Where("(users.name LIKE ? OR users.email LIKE ?)", searchTerm, searchTerm)
	}

	err := db.Find(&friends).Error
	return friends, err
}

// GetFriendIDs 只获取好友的 ID 列表
func (r *FriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ? AND status = ?", userID, model.FriendshipAccepted).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存)
func (r *FriendshipRepository) GetFriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := fmt.Sprintf("social:relation:friends:%d", userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		var ids []uint
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透：存一个特殊值并设置短过期时间
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}

func (r *FriendshipRepository) CountFriends(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ? AND status = ?", userID, model.FriendshipAccepted).
		Count(&count).Error
	return count, err
}

// GetPendingReceived 收到的待处理申请
func (r *FriendshipRepository) GetPendingReceived(userID uint) ([]model.Friendship, error) {
	var edges []model.Friendship
	err := r.DB.Preload("User").
		Where("friend_id = ? AND status = ?", userID, model.FriendshipPending).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

// GetPendingSent 发出的待处理申请
func (r *FriendshipRepository) GetPendingSent(userID uint) ([]model.Friendship, error) {
	var edges []model.Friendship
	err := r.DB.Preload("Friend").
		Where("user_id = ? AND status = ?", userID, model.FriendshipPending).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

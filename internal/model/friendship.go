package model

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship 好友关系表，有向边
// pending 状态只存在单向边；accepted 状态必须成对存在（A→B 与 B→A 同为 accepted）
type Friendship struct {
	BaseModel
	UserID     uint             `gorm:"not null;uniqueIndex:idx_friend_pair" json:"userId"`
	FriendID   uint             `gorm:"not null;uniqueIndex:idx_friend_pair" json:"friendId"`
	Status     FriendshipStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Message    string           `gorm:"size:255" json:"message,omitempty"`
	AcceptedAt *time.Time       `json:"acceptedAt,omitempty"`

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:false" json:"user,omitempty"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:false" json:"friend,omitempty"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// PairStatus 一对用户之间关系的查询结果，四种状态互斥
type PairStatus string

const (
	PairFriends         PairStatus = "FRIENDS"
	PairRequestSent     PairStatus = "REQUEST_SENT"
	PairRequestReceived PairStatus = "REQUEST_RECEIVED"
	PairNotFriends      PairStatus = "NOT_FRIENDS"
)

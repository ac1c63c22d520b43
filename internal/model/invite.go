package model

import "time"

// InviteCode 邀请码表
// used_by 一经写入不再清空；兑换成功后与签发者建立双向好友关系
// swagger:model InviteCode
type InviteCode struct {
	UUIDBase
	Code          string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	GeneratedByID *uint      `gorm:"index" json:"generatedById,omitempty"`
	UsedByID      *uint      `gorm:"index" json:"usedById,omitempty"`
	UsedAt        *time.Time `json:"usedAt,omitempty"`

	GeneratedBy *User `gorm:"foreignKey:GeneratedByID;references:ID;constraint:false" json:"generatedBy,omitempty"`
	UsedBy      *User `gorm:"foreignKey:UsedByID;references:ID;constraint:false" json:"usedBy,omitempty"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}

package model

import "time"

// UserMovieView 用户对单部影片的已看/未看记录
// (user_id, movie_id) 唯一约束保证每对至多一条，并发重复写入由该约束仲裁
// swagger:model UserMovieView
type UserMovieView struct {
	BaseModel
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_movie" json:"userId"`
	MovieID      uint      `gorm:"not null;uniqueIndex:idx_user_movie" json:"movieId"`
	HasSeen      bool      `gorm:"default:false" json:"hasSeen"`
	DateRecorded time.Time `gorm:"autoCreateTime" json:"dateRecorded"`

	Movie Movie `gorm:"foreignKey:MovieID;references:ID;constraint:false" json:"movie,omitempty"`
}

func (UserMovieView) TableName() string {
	return "user_movie_views"
}

package model

// PersonRole 人员在影片中的职能
type PersonRole string

const (
	RoleActor           PersonRole = "actor"
	RoleDirector        PersonRole = "director"
	RoleProducer        PersonRole = "producer"
	RoleCinematographer PersonRole = "cinematographer"
)

// AllPersonRoles 人员筛选时跨全部职能匹配
var AllPersonRoles = []PersonRole{RoleActor, RoleDirector, RoleProducer, RoleCinematographer}

// Person 影人表，演员/导演/制片/摄影共用一张表，职能由关联表区分
type Person struct {
	BaseModel
	Name   string  `gorm:"size:255;uniqueIndex;not null" json:"name"`
	IMDBID *string `gorm:"size:20;uniqueIndex" json:"imdbId,omitempty"`
	TMDBID *int    `gorm:"uniqueIndex" json:"tmdbId,omitempty"`
}

func (Person) TableName() string {
	return "people"
}

// MoviePerson 影片-影人职能关联表
type MoviePerson struct {
	MovieID  uint       `gorm:"primaryKey;autoIncrement:false" json:"movieId"`
	PersonID uint       `gorm:"primaryKey;autoIncrement:false" json:"personId"`
	Role     PersonRole `gorm:"primaryKey;size:20" json:"role"`
	Person   Person     `gorm:"foreignKey:PersonID;references:ID;constraint:false" json:"person,omitempty"`
}

func (MoviePerson) TableName() string {
	return "movie_people"
}

package model

// Genre 电影类型表
type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;unique;not null" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}

// Movie 电影目录表，核心字段为票房 revenue（分级抽样的依据）
// swagger:model Movie
type Movie struct {
	BaseModel
	Title          string  `gorm:"size:255;not null" json:"title"`
	ReleaseYear    int     `gorm:"not null" json:"releaseYear"`
	RuntimeMinutes *int    `json:"runtimeMinutes,omitempty"`
	Revenue        int64   `gorm:"not null;default:0" json:"revenue"`
	PlotSummary    string  `gorm:"type:text" json:"plotSummary,omitempty"`
	IMDBID         *string `gorm:"size:15;uniqueIndex" json:"imdbId,omitempty"`
	TMDBID         *int    `gorm:"uniqueIndex" json:"tmdbId,omitempty"`
	PosterURL      string  `gorm:"size:500" json:"posterUrl,omitempty"`

	Genres  []Genre       `gorm:"many2many:movie_genres" json:"genres,omitempty"`
	Credits []MoviePerson `gorm:"foreignKey:MovieID" json:"credits,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}

// Decade 电影上映年代（向下取整到十年）
func (m *Movie) Decade() int {
	return (m.ReleaseYear / 10) * 10
}

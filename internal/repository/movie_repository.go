package repository

import (
	"context"
	"encoding/json"
	"movie_tracker_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const genreCacheKey = "catalog:genres"

// MovieRepository 只读访问电影目录（目录由外部批量任务填充）
type MovieRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewMovieRepository(db *gorm.DB, rdb *redis.Client) *MovieRepository {
	return &MovieRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *MovieRepository) FindByID(id uint) (*model.Movie, error) {
	var movie model.Movie
	err := r.DB.Preload("Genres").Preload("Credits.Person").First(&movie, id).Error
	return &movie, err
}

// ListGenres 类型列表 (带缓存)
func (r *MovieRepository) ListGenres() ([]model.Genre, error) {
	if r.Redis != nil {
		if cached, err := r.Redis.Get(r.ctx, genreCacheKey).Result(); err == nil {
			var genres []model.Genre
			if json.Unmarshal([]byte(cached), &genres) == nil && len(genres) > 0 {
				return genres, nil
			}
		}
	}

	var genres []model.Genre
	err := r.DB.Order("name").Find(&genres).Error
	if err != nil {
		return nil, err
	}

	if r.Redis != nil && len(genres) > 0 {
		if data, err := json.Marshal(genres); err == nil {
			r.Redis.Set(r.ctx, genreCacheKey, data, 24*time.Hour)
		}
	}
	return genres, nil
}

// CreateGenre 新增电影类型并使缓存失效
func (r *MovieRepository) CreateGenre(genre *model.Genre) error {
	if err := r.DB.Create(genre).Error; err != nil {
		return err
	}
	if r.Redis != nil {
		r.Redis.Del(r.ctx, genreCacheKey)
	}
	return nil
}

// UnseenForUser 用户尚未评过的影片，可按类型和影人名称子串过滤
// 影人过滤跨演员/导演/制片/摄影全部职能匹配
func (r *MovieRepository) UnseenForUser(userID uint, genreID uint, personQuery string) ([]model.Movie, error) {
	viewed := r.DB.Model(&model.UserMovieView{}).
		Select("movie_id").
		Where("user_id = ?", userID)

	q := r.DB.Model(&model.Movie{}).
		Where("movies.id NOT IN (?)", viewed)

	if genreID != 0 {
		q = q.Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Where("movie_genres.genre_id = ?", genreID)
	}

	if personQuery != "" {
		searchTerm := "%" + personQuery + "%"
		q = q.Joins("JOIN movie_people ON movie_people.movie_id = movies.id").
			Joins("JOIN people ON people.id = movie_people.person_id").
			Where("people.name LIKE ?", searchTerm).
			Distinct("movies.*")
	}

	var movies []model.Movie
	err := q.Find(&movies).Error
	return movies, err
}

package service

import (
	"errors"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/util"

	"gorm.io/gorm"
)

// MovieService 影片目录只读服务
type MovieService struct {
	MovieRepo *repository.MovieRepository
}

func NewMovieService(movieRepo *repository.MovieRepository) *MovieService {
	return &MovieService{
		MovieRepo: movieRepo,
	}
}

func (s *MovieService) GetMovie(id uint) (*model.Movie, error) {
	movie, err := s.MovieRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) ListGenres() ([]model.Genre, error) {
	return s.MovieRepo.ListGenres()
}

func (s *MovieService) CreateGenre(name string) (*model.Genre, error) {
	genre := &model.Genre{Name: name}
	if err := s.MovieRepo.CreateGenre(genre); err != nil {
		return nil, err
	}
	return genre, nil
}

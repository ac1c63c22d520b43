package service

import (
	"fmt"
	"movie_tracker_backend/internal/config"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库随连接销毁，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Genre{},
		&model.Person{},
		&model.Movie{},
		&model.MoviePerson{},
		&model.UserMovieView{},
		&model.Friendship{},
		&model.InviteCode{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Invite: config.InviteConfig{
			CodeLength: 12,
			MaxRetries: 5,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     model.Member,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&model.Profile{UserID: user.ID}).Error)
	return user
}

func createTestMovie(t *testing.T, db *gorm.DB, title string, revenue int64) *model.Movie {
	t.Helper()

	movie := &model.Movie{
		Title:       title,
		ReleaseYear: 2000,
		Revenue:     revenue,
	}
	require.NoError(t, db.Create(movie).Error)
	return movie
}

func newTestInviteService(db *gorm.DB) *InviteService {
	return NewInviteService(
		repository.NewInviteRepository(db),
		repository.NewFriendshipRepository(db, nil),
		testConfig(),
		db,
	)
}

func newTestDiscoveryService(db *gorm.DB) *DiscoveryService {
	return NewDiscoveryService(
		repository.NewMovieRepository(db, nil),
		repository.NewViewingRepository(db),
		repository.NewUserRepository(db),
		newTestInviteService(db),
		db,
	)
}

func newTestFriendshipService(db *gorm.DB) *FriendshipService {
	return NewFriendshipService(
		repository.NewFriendshipRepository(db, nil),
		repository.NewUserRepository(db),
	)
}

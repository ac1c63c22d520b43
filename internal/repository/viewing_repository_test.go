package repository

import (
	"movie_tracker_backend/internal/model"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newViewingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库随连接销毁，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.UserMovieView{}))
	return db
}

func TestGetOrCreateFirstWrite(t *testing.T) {
	db := newViewingTestDB(t)
	repo := NewViewingRepository(db)

	view := &model.UserMovieView{UserID: 1, MovieID: 2, HasSeen: true}
	created, err := repo.GetOrCreate(nil, view)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, view.ID)
}

// 撞唯一约束后必须在同一事务里读回先写者的行，而不是报错
func TestGetOrCreateRecoversFromDuplicate(t *testing.T) {
	db := newViewingTestDB(t)
	repo := NewViewingRepository(db)

	first := &model.UserMovieView{UserID: 7, MovieID: 42, HasSeen: true}
	created, err := repo.GetOrCreate(nil, first)
	require.NoError(t, err)
	require.True(t, created)

	err = db.Transaction(func(tx *gorm.DB) error {
		second := &model.UserMovieView{UserID: 7, MovieID: 42, HasSeen: false}
		created, err := repo.GetOrCreate(tx, second)
		require.NoError(t, err)
		assert.False(t, created)

		// 回填的是先写者的记录
		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.HasSeen)
		return nil
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.UserMovieView{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

package service

import (
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 为用户预置 n 条历史评分记录（指向不存在的影片ID即可，台账不做外键约束）
func seedViews(t *testing.T, svc *DiscoveryService, userID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		view := &model.UserMovieView{
			UserID:  userID,
			MovieID: uint(100000 + i),
			HasSeen: i%2 == 0,
		}
		require.NoError(t, svc.DB.Create(view).Error)
	}
}

func TestRecordViewCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Heat", 67_000_000)

	view, created, events, err := svc.RecordView(user.ID, movie.ID, true)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, view.HasSeen)
	assert.Empty(t, events)

	// 重复提交幂等返回先写者的记录，不产生副作用
	again, created, events, err := svc.RecordView(user.ID, movie.ID, false)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, view.ID, again.ID)
	assert.True(t, again.HasSeen)
	assert.Empty(t, events)

	var count int64
	require.NoError(t, db.Model(&model.UserMovieView{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordViewMovieNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")

	_, _, _, err := svc.RecordView(user.ID, 9999, true)
	assert.ErrorIs(t, err, util.ErrMovieNotFound)
}

func TestRecordViewTouchesLastActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Alien", 104_000_000)

	before := time.Now().Add(-time.Second)
	_, created, _, err := svc.RecordView(user.ID, movie.ID, true)
	require.NoError(t, err)
	require.True(t, created)

	var profile model.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.True(t, profile.LastActivity.After(before))
}

func TestRecordViewBaseMilestone(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Jaws", 476_000_000)

	seedViews(t, svc, user.ID, 249)

	_, created, events, err := svc.RecordView(user.ID, movie.ID, true)
	require.NoError(t, err)
	require.True(t, created)

	require.Len(t, events, 1)
	assert.EqualValues(t, 250, events[0].Count)
	assert.Len(t, events[0].Codes, 5)

	var codes []model.InviteCode
	require.NoError(t, db.Where("generated_by_id = ?", user.ID).Find(&codes).Error)
	assert.Len(t, codes, 5)
}

func TestRecordViewStepMilestone(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Ran", 4_000_000)

	seedViews(t, svc, user.ID, 349)

	_, _, events, err := svc.RecordView(user.ID, movie.ID, false)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.EqualValues(t, 350, events[0].Count)
	assert.Len(t, events[0].Codes, 1)
}

func TestRecordViewNoMilestoneOffThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Tampopo", 500_000)

	seedViews(t, svc, user.ID, 100)

	_, _, events, err := svc.RecordView(user.ID, movie.ID, true)
	require.NoError(t, err)
	assert.Empty(t, events)

	var count int64
	require.NoError(t, db.Model(&model.InviteCode{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUpdateRating(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	other := createTestUser(t, db, "bob")
	movie := createTestMovie(t, db, "Seven", 327_000_000)

	view, _, _, err := svc.RecordView(user.ID, movie.ID, false)
	require.NoError(t, err)

	// 非归属者不能修改
	_, err = svc.UpdateRating(other.ID, view.ID, true)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 不存在的记录
	_, err = svc.UpdateRating(user.ID, 9999, true)
	assert.ErrorIs(t, err, util.ErrViewNotFound)

	updated, err := svc.UpdateRating(user.ID, view.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.HasSeen)

	var stored model.UserMovieView
	require.NoError(t, db.First(&stored, view.ID).Error)
	assert.True(t, stored.HasSeen)
}

func TestSelectNextExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Solaris", 200_000)

	_, _, _, err := svc.RecordView(user.ID, movie.ID, true)
	require.NoError(t, err)

	picked, err := svc.SelectNext(user.ID, DiscoveryFilters{})
	require.NoError(t, err)
	assert.Nil(t, picked)
}

func TestSelectNextSkipsRated(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")
	rated := createTestMovie(t, db, "Rated", 10_000_000)
	unrated := createTestMovie(t, db, "Unrated", 20_000_000)

	_, _, _, err := svc.RecordView(user.ID, rated.ID, true)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		picked, err := svc.SelectNext(user.ID, DiscoveryFilters{})
		require.NoError(t, err)
		require.NotNil(t, picked)
		assert.Equal(t, unrated.ID, picked.ID)
	}
}

func TestSelectNextGenreFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")

	noir := &model.Genre{Name: "Film-Noir"}
	require.NoError(t, db.Create(noir).Error)

	inGenre := createTestMovie(t, db, "Laura", 4_000_000)
	require.NoError(t, db.Model(inGenre).Association("Genres").Append(noir))
	createTestMovie(t, db, "Other", 4_000_000)

	for i := 0; i < 20; i++ {
		picked, err := svc.SelectNext(user.ID, DiscoveryFilters{GenreID: noir.ID})
		require.NoError(t, err)
		require.NotNil(t, picked)
		assert.Equal(t, inGenre.ID, picked.ID)
	}
}

func TestSelectNextPersonFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDiscoveryService(db)
	user := createTestUser(t, db, "alice")

	director := &model.Person{Name: "Akira Kurosawa"}
	require.NoError(t, db.Create(director).Error)

	match := createTestMovie(t, db, "Yojimbo", 2_000_000)
	require.NoError(t, db.Create(&model.MoviePerson{
		MovieID:  match.ID,
		PersonID: director.ID,
		Role:     model.RoleDirector,
	}).Error)
	createTestMovie(t, db, "Unrelated", 2_000_000)

	for i := 0; i < 20; i++ {
		picked, err := svc.SelectNext(user.ID, DiscoveryFilters{PersonQuery: "kurosawa"})
		require.NoError(t, err)
		require.NotNil(t, picked)
		assert.Equal(t, match.ID, picked.ID)
	}
}

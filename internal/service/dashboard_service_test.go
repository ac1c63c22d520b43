package service

import (
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewViewingRepository(db),
		repository.NewFriendshipRepository(db, nil),
		repository.NewInviteRepository(db),
	)
}

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)
	inviteSvc := newTestInviteService(db)
	friendSvc := newTestFriendshipService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	// 3 条已看 + 2 条未看
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&model.UserMovieView{
			UserID:  alice.ID,
			MovieID: uint(1000 + i),
			HasSeen: i < 3,
		}).Error)
	}

	edge, err := friendSvc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = friendSvc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	_, err = inviteSvc.GenerateCode(alice.ID)
	require.NoError(t, err)

	dash, err := svc.GetDashboard(alice.ID)
	require.NoError(t, err)

	assert.Equal(t, alice.ID, dash.User.ID)
	assert.EqualValues(t, 3, dash.SeenCount)
	assert.EqualValues(t, 5, dash.TotalRated)
	assert.EqualValues(t, 1, dash.FriendCount)
	assert.EqualValues(t, 1, dash.UnusedInvites)
	assert.EqualValues(t, 250, dash.NextMilestone)
	assert.False(t, dash.LastActivity.IsZero())
}

package service

import (
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestCreatesPendingEdge(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipPending, edge.Status)
	assert.Equal(t, "hi", edge.Message)

	// pending 阶段只存在单向边
	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	status, err := svc.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PairRequestSent, status)

	status, err = svc.Status(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PairRequestReceived, status)
}

func TestSendRequestToSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")

	_, err := svc.SendRequest(alice.ID, alice.ID, "")
	assert.ErrorIs(t, err, util.ErrSelfFriendRequest)
}

func TestSendRequestUnknownReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")

	_, err := svc.SendRequest(alice.ID, 9999, "")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSendRequestIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	second, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// 互相申请视为接受
func TestReciprocalRequestAutoAccepts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	edge, err := svc.SendRequest(bob.ID, alice.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipAccepted, edge.Status)

	status, err := svc.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PairFriends, status)
}

func TestSendRequestWhenAlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendRequest(bob.ID, alice.ID, "")
	assert.ErrorIs(t, err, util.ErrAlreadyFriends)
}

func TestAcceptCreatesMirrorEdge(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	accepted, err := svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)

	// 两条边都是 accepted，时间戳一致
	var edges []model.Friendship
	require.NoError(t, db.Order("id").Find(&edges).Error)
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(t, model.FriendshipAccepted, e.Status)
		require.NotNil(t, e.AcceptedAt)
	}
	assert.True(t, edges[0].AcceptedAt.Equal(*edges[1].AcceptedAt))

	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		status, err := svc.Status(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, model.PairFriends, status)
	}
}

func TestAcceptOnlyByReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	// 发起方不能替对方接受
	_, err = svc.AcceptRequest(edge.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.AcceptRequest(9999, bob.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
}

func TestAcceptIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	_, err = svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDeclineRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	// 发起方不能拒绝自己的申请
	err = svc.DeclineRequest(edge.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.DeclineRequest(edge.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	status, err := svc.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PairNotFriends, status)
}

func TestDeclineHandledRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	err = svc.DeclineRequest(edge.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrRequestHandled)
}

func TestCancelRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	// 接收方不能撤回
	err = svc.CancelRequest(edge.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.CancelRequest(edge.ID, alice.ID))

	status, err := svc.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PairNotFriends, status)
}

func TestRemoveFriendDeletesBothDirections(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFriend(bob.ID, alice.ID))

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		status, err := svc.Status(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, model.PairNotFriends, status)
	}
}

// pending 状态的边也可以被任一方解除
func TestRemoveFriendClearsPendingEdge(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)

	// 被申请方主动解除，反向也能命中
	require.NoError(t, svc.RemoveFriend(bob.ID, alice.ID))

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		status, err := svc.Status(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, model.PairNotFriends, status)
	}
}

func TestRemoveFriendNotFriends(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	err := svc.RemoveFriend(alice.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrFriendshipNotFound)
}

func TestGetFriendsListsAcceptedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	edge, err := svc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = svc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	// carol 的申请保持 pending，不应出现在好友列表
	_, err = svc.SendRequest(carol.ID, alice.ID, "")
	require.NoError(t, err)

	friends, err := svc.GetFriends(alice.ID, "")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	received, err := svc.GetPendingReceived(alice.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, carol.ID, received[0].UserID)

	sent, err := svc.GetPendingSent(carol.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, alice.ID, sent[0].FriendID)
}

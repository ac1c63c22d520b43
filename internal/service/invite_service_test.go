package service

import (
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	alice := createTestUser(t, db, "alice")

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		invite, err := svc.GenerateCode(alice.ID)
		require.NoError(t, err)

		assert.Len(t, invite.Code, 12)
		for _, ch := range invite.Code {
			assert.True(t, strings.ContainsRune(inviteCodeAlphabet, ch), "unexpected char %q", ch)
		}
		assert.False(t, seen[invite.Code], "duplicate code %s", invite.Code)
		seen[invite.Code] = true

		require.NotNil(t, invite.GeneratedByID)
		assert.Equal(t, alice.ID, *invite.GeneratedByID)
		assert.Nil(t, invite.UsedByID)
	}
}

func TestRedeemBootstrapsFriendship(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	friendSvc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	invite, err := svc.GenerateCode(alice.ID)
	require.NoError(t, err)

	redeemed, err := svc.Redeem(invite.Code, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, redeemed.UsedByID)
	assert.Equal(t, bob.ID, *redeemed.UsedByID)
	assert.NotNil(t, redeemed.UsedAt)

	// 兑换成功即为双向好友
	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		status, err := friendSvc.Status(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, model.PairFriends, status)
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	bob := createTestUser(t, db, "bob")

	_, err := svc.Redeem("NOSUCHCODE22", bob.ID)
	assert.ErrorIs(t, err, util.ErrInvalidInviteCode)
}

func TestRedeemOwnCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	alice := createTestUser(t, db, "alice")

	invite, err := svc.GenerateCode(alice.ID)
	require.NoError(t, err)

	_, err = svc.Redeem(invite.Code, alice.ID)
	assert.ErrorIs(t, err, util.ErrInvalidInviteCode)
}

// 每个码只能兑换一次，后来者不覆盖先写者
func TestRedeemOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	invite, err := svc.GenerateCode(alice.ID)
	require.NoError(t, err)

	_, err = svc.Redeem(invite.Code, bob.ID)
	require.NoError(t, err)

	_, err = svc.Redeem(invite.Code, carol.ID)
	assert.ErrorIs(t, err, util.ErrInviteCodeUsed)

	var stored model.InviteCode
	require.NoError(t, db.Where("code = ?", invite.Code).First(&stored).Error)
	require.NotNil(t, stored.UsedByID)
	assert.Equal(t, bob.ID, *stored.UsedByID)
}

// 已是好友时兑换不产生重复边
func TestRedeemWhenAlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	friendSvc := newTestFriendshipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	edge, err := friendSvc.SendRequest(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = friendSvc.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	invite, err := svc.GenerateCode(alice.ID)
	require.NoError(t, err)
	_, err = svc.Redeem(invite.Code, bob.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListByIssuerAndUnusedCount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestInviteService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first, err := svc.GenerateCode(alice.ID)
	require.NoError(t, err)
	_, err = svc.GenerateCode(alice.ID)
	require.NoError(t, err)

	_, err = svc.Redeem(first.Code, bob.ID)
	require.NoError(t, err)

	codes, err := svc.ListByIssuer(alice.ID)
	require.NoError(t, err)
	assert.Len(t, codes, 2)

	unused, err := svc.InviteRepo.CountUnusedByIssuer(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unused)
}

package services

import (
	"testing"
	"time"

	"amora_backend/internal/models"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swipeReq(targetID string, action models.SwipeActionKind) *dto.SwipeRequest {
	return &dto.SwipeRequest{TargetID: targetID, Action: string(action)}
}

func TestRecordSwipe_OneSidedLikeDoesNotMatch(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	result, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeLike))
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeRecorded, result.Outcome)
	assert.Nil(t, result.Match)

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.Zero(t, count, "односторонний лайк не должен создавать матч")
}

func TestRecordSwipe_MutualLikeCreatesSingleMatch(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeLike))
	require.NoError(t, err)

	result, err := svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeMatched, result.Outcome)
	require.NotNil(t, result.Match)
	assert.True(t, result.Match.IsActive)

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.EqualValues(t, 1, count, "взаимный лайк должен давать ровно один матч")
}

func TestRecordSwipe_ReplayedMutualLikeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeLike))
	require.NoError(t, err)
	first, err := svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)
	require.Equal(t, dto.OutcomeMatched, first.Outcome)

	// Повтор лайка по уже сматченной паре
	time.Sleep(5 * time.Millisecond)
	replay, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeLike))
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeAlreadyMatched, replay.Outcome)
	require.NotNil(t, replay.Match)
	assert.Equal(t, first.Match.ID, replay.Match.ID)

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordSwipe_PassAndBlockNeverMatch(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	// Bob лайкнул Алису заранее
	_, err := svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)

	for _, kind := range []models.SwipeActionKind{models.SwipePass, models.SwipeBlock} {
		result, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, kind))
		require.NoError(t, err)
		assert.Equal(t, dto.OutcomeRecorded, result.Outcome, "действие %s не должно давать матч", kind)
	}

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordSwipe_LastActionWins(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	// Bob сначала лайкнул, потом передумал - pass
	_, err := svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipePass))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Последний вердикт Bob-а - pass, матча быть не должно
	result, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeLike))
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeRecorded, result.Outcome)

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordSwipe_SelfSwipeRejected(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")

	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(alice.ID, models.SwipeLike))
	assert.ErrorIs(t, err, apperrors.ErrSelfSwipe)

	var count int64
	db.Model(&models.SwipeAction{}).Count(&count)
	assert.Zero(t, count, "отклоненный свайп не должен попасть в журнал")
}

func TestRecordSwipe_UnknownTargetRejected(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")

	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq("00000000-0000-0000-0000-000000000000", models.SwipeLike))
	assert.Error(t, err)

	var count int64
	db.Model(&models.SwipeAction{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordSwipe_InvalidActionRejected(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, &dto.SwipeRequest{TargetID: bob.ID, Action: "superlike"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSwipeAction)
}

func TestSentLikes_OnlyUnansweredRemain(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")
	carol := createTestUser(t, db, "carol@test.io", "Carol")

	// Alice лайкнула обоих
	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeLike))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(carol.ID, models.SwipeLike))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Bob ответил (pass) - он уходит из списка ожидающих
	_, err = svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipePass))
	require.NoError(t, err)

	sent, err := svc.SwipeService.SentLikes(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, carol.ID, sent[0].User.ID)
}

func TestReceivedLikes_OnlyUnansweredRemain(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")
	carol := createTestUser(t, db, "carol@test.io", "Carol")

	_, err := svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.SwipeService.RecordSwipe(db, carol.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Alice ответила Бобу
	_, err = svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipePass))
	require.NoError(t, err)

	received, err := svc.SwipeService.ReceivedLikes(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, carol.ID, received[0].User.ID)
}

func TestReceivedLikes_RetractedLikeDisappears(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	_, err := svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipeLike))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Bob передумал: последний вердикт - pass
	_, err = svc.SwipeService.RecordSwipe(db, bob.ID, swipeReq(alice.ID, models.SwipePass))
	require.NoError(t, err)

	received, err := svc.SwipeService.ReceivedLikes(db, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, received)
}

func TestBlockedUsers_LatestVerdictGoverns(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")
	carol := createTestUser(t, db, "carol@test.io", "Carol")

	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(bob.ID, models.SwipeBlock))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Carol была заблокирована, но потом разблокирована лайком
	_, err = svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(carol.ID, models.SwipeBlock))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.SwipeService.RecordSwipe(db, alice.ID, swipeReq(carol.ID, models.SwipeLike))
	require.NoError(t, err)

	blocked, err := svc.SwipeService.BlockedUsers(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, bob.ID, blocked[0].UserID)
}

func TestRecordSwipe_VenueTaggedLike(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")
	venue := createTestVenue(t, db, "Club Paradise", 44.8176, 20.4612, 100)

	req := swipeReq(bob.ID, models.SwipeLike)
	req.VenueID = &venue.ID
	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, req)
	require.NoError(t, err)

	var action models.SwipeAction
	require.NoError(t, db.First(&action).Error)
	require.NotNil(t, action.VenueID)
	assert.Equal(t, venue.ID, *action.VenueID)
}

func TestRecordSwipe_UnknownVenueRejected(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	badID := "00000000-0000-0000-0000-000000000000"
	req := swipeReq(bob.ID, models.SwipeLike)
	req.VenueID = &badID
	_, err := svc.SwipeService.RecordSwipe(db, alice.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrVenueNotFound)
}

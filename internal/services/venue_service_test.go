package services

import (
	"math"
	"testing"

	"amora_backend/internal/geo"
	"amora_backend/internal/models"
	"amora_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// сдвиг по широте, дающий примерно заданное расстояние в метрах
func latOffsetMeters(m float64) float64 {
	return (m / geo.EarthRadiusM) * (180.0 / math.Pi)
}

func TestVenuesInRange_ContainmentAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	near := createTestVenue(t, db, "Club Paradise", lat, lng, 100)
	far := createTestVenue(t, db, "Far Bar", lat+latOffsetMeters(5000), lng, 100)
	wide := createTestVenue(t, db, "Stadium", lat+latOffsetMeters(400), lng, 500)

	venues, err := svc.VenueService.VenuesInRange(db, lat, lng)
	require.NoError(t, err)

	require.Len(t, venues, 2)
	assert.Equal(t, near.ID, venues[0].ID, "ближайшее заведение первым")
	assert.Equal(t, wide.ID, venues[1].ID)
	assert.Zero(t, venues[0].DistanceM, "та же точка - расстояние 0")

	for _, v := range venues {
		assert.NotEqual(t, far.ID, v.ID)
	}
}

func TestVenuesInRange_BoundaryMeters(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	venue := createTestVenue(t, db, "Boundary Club", lat, lng, 1000)

	// 999 метров - внутри
	inside, err := svc.VenueService.VenuesInRange(db, lat+latOffsetMeters(999), lng)
	require.NoError(t, err)
	require.Len(t, inside, 1)
	assert.Equal(t, venue.ID, inside[0].ID)

	// 1001 метр - снаружи
	outside, err := svc.VenueService.VenuesInRange(db, lat+latOffsetMeters(1001), lng)
	require.NoError(t, err)
	assert.Empty(t, outside)
}

func TestVenuesInRange_ZeroRadiusNeverContains(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	createTestVenue(t, db, "Point Venue", lat, lng, 0)

	venues, err := svc.VenueService.VenuesInRange(db, lat, lng)
	require.NoError(t, err)
	assert.Empty(t, venues, "нулевой радиус не содержит даже собственный центр")
}

func TestVenuesInRange_InvalidCoordinates(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	_, err := svc.VenueService.VenuesInRange(db, 91.0, 0.0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestCheckIn_InsideGeofence(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	venue := createTestVenue(t, db, "Club Paradise", lat, lng, 100)

	result, err := svc.VenueService.CheckIn(db, alice.ID, venue.ID, lat, lng)
	require.NoError(t, err)
	assert.Equal(t, venue.ID, result.ID)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", alice.ID).Error)
	require.NotNil(t, user.CurrentVenueID)
	assert.Equal(t, venue.ID, *user.CurrentVenueID)
}

func TestCheckIn_OutsideGeofenceRejected(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	venue := createTestVenue(t, db, "Club Paradise", lat, lng, 100)

	_, err := svc.VenueService.CheckIn(db, alice.ID, venue.ID, lat+latOffsetMeters(500), lng)
	assert.ErrorIs(t, err, apperrors.ErrOutsideVenue)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", alice.ID).Error)
	assert.Nil(t, user.CurrentVenueID)
}

func TestCheckOut_ClearsCurrentVenue(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	venue := createTestVenue(t, db, "Club Paradise", lat, lng, 100)

	_, err := svc.VenueService.CheckIn(db, alice.ID, venue.ID, lat, lng)
	require.NoError(t, err)

	require.NoError(t, svc.VenueService.CheckOut(db, alice.ID))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", alice.ID).Error)
	assert.Nil(t, user.CurrentVenueID)
}

func TestDeactivatedVenueNotInRange(t *testing.T) {
	db := setupTestDB(t)
	_, svc := newTestServices()

	const lat, lng = 44.8176, 20.4612
	venue := createTestVenue(t, db, "Closed Club", lat, lng, 100)

	require.NoError(t, svc.VenueService.DeactivateVenue(db, venue.ID))

	venues, err := svc.VenueService.VenuesInRange(db, lat, lng)
	require.NoError(t, err)
	assert.Empty(t, venues)
}

package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Смещение по широте, дающее ровно 1000 м дуги при R = 6371000.
const oneKmLatDegrees = (1000.0 / EarthRadiusM) * (180.0 / math.Pi)

func TestDistanceIdenticalPoints(t *testing.T) {
	d := Distance(44.8176, 20.4612, 44.8176, 20.4612)
	assert.Equal(t, 0.0, d, "distance(P, P) must be exactly zero")
	assert.False(t, math.IsNaN(d))
}

func TestDistanceSymmetry(t *testing.T) {
	d1 := Distance(44.8176, 20.4612, 48.8566, 2.3522)
	d2 := Distance(48.8566, 2.3522, 44.8176, 20.4612)
	assert.Equal(t, d1, d2)
}

func TestDistanceOneKilometerByConstruction(t *testing.T) {
	lat := 44.8176
	lon := 20.4612
	d := Distance(lat, lon, lat+oneKmLatDegrees, lon)
	assert.InDelta(t, 1000.0, d, 0.01)
}

func TestDistanceAntipodalNoNaN(t *testing.T) {
	d := Distance(0, 0, 0, 180)
	assert.False(t, math.IsNaN(d))
	// Половина длины большого круга
	assert.InDelta(t, math.Pi*EarthRadiusM, d, 1.0)

	d = Distance(90, 0, -90, 0)
	assert.False(t, math.IsNaN(d))
}

func TestDistanceKnownValue(t *testing.T) {
	// Белград -> Нови-Сад, примерно 69-70 км
	d := Distance(44.8176, 20.4612, 45.2671, 19.8335)
	assert.Greater(t, d, 65000.0)
	assert.Less(t, d, 75000.0)
}

func TestContainsRadiusBoundary(t *testing.T) {
	lat := 44.8176
	lon := 20.4612
	farLat := lat + oneKmLatDegrees

	// Точки в 1000 м: радиус 999 не содержит, 1001 содержит
	assert.False(t, Contains(lat, lon, 999, farLat, lon))
	assert.True(t, Contains(lat, lon, 1001, farLat, lon))
}

func TestContainsZeroAndNegativeRadius(t *testing.T) {
	assert.False(t, Contains(44.8176, 20.4612, 0, 44.8176, 20.4612))
	assert.False(t, Contains(44.8176, 20.4612, -5, 44.8176, 20.4612))
}

func TestContainsSamePoint(t *testing.T) {
	assert.True(t, Contains(44.8176, 20.4612, 100, 44.8176, 20.4612))
}

func TestRoundMeters(t *testing.T) {
	assert.Equal(t, 1000.0, RoundMeters(999.6))
	assert.Equal(t, 999.0, RoundMeters(999.4))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.01, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
}

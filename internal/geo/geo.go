// Package geo содержит чистую геометрию: расстояние по большому кругу
// и проверку принадлежности точке круговой геозоны.
package geo

import "math"

// EarthRadiusM - радиус Земли в метрах
const EarthRadiusM = 6371000.0

// Distance возвращает расстояние между двумя точками в метрах по формуле
// гаверсинусов. Входные координаты в десятичных градусах.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	rLat1 := lat1 * (math.Pi / 180)
	rLat2 := lat2 * (math.Pi / 180)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(rLat1)*math.Cos(rLat2)

	// Плавающая арифметика может вытолкнуть a чуть за [0, 1]
	// (идентичные и антиподальные точки) - Sqrt дал бы NaN.
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// RoundMeters округляет расстояние до целого метра. Только для отображения:
// сравнение с радиусом всегда идет по неокругленному значению.
func RoundMeters(d float64) float64 {
	return math.Round(d)
}

// ValidCoordinates reports whether the point is a sane WGS84 coordinate.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Contains reports whether the point lies inside a circular geofence.
// Нулевой и отрицательный радиус не содержат ничего.
func Contains(centerLat, centerLon, radiusM, lat, lon float64) bool {
	if radiusM <= 0 {
		return false
	}
	return Distance(centerLat, centerLon, lat, lon) <= radiusM
}

package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrMapLineNotFound = errors.New("map line not found")
	ErrDegenerateLine  = errors.New("map line endpoints must differ")
	ErrInvalidPoint    = errors.New("coordinates out of range")
)

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// Point is a station position in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Valid reports whether the point lies within WGS84 bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// MapLine is a drawn segment between two railway stations.
type MapLine struct {
	ID        string    `json:"id" bson:"_id"`
	Start     Point     `json:"start" bson:"start"`
	End       Point     `json:"end" bson:"end"`
	LengthKm  float64   `json:"length_km" bson:"length_km"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DistanceKm returns the great-circle distance between a and b (haversine).
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

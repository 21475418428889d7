package domain

import "math"

const earthRadiusMeters = 6371e3

// DefaultGeofenceRadius is the allowed distance from a site when none is configured.
const DefaultGeofenceRadius = 500.0

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within latitude and longitude bounds.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// DistanceMeters is the great-circle distance to q, rounded to a tenth of a meter.
func (p GeoPoint) DistanceMeters(q GeoPoint) float64 {
	phi1 := p.Latitude * math.Pi / 180
	phi2 := q.Latitude * math.Pi / 180
	dPhi := (q.Latitude - p.Latitude) * math.Pi / 180
	dLambda := (q.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusMeters*c*10) / 10
}

// Location is where a worker was when punching. Accuracy is the device's
// reported radius in meters; Address is an optional reverse-geocoded label.
type Location struct {
	GeoPoint
	Accuracy float64 `json:"accuracy,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// GeofenceStatus grades a location against a site.
type GeofenceStatus string

const (
	GeofenceValid      GeofenceStatus = "valid"
	GeofenceSuspicious GeofenceStatus = "suspicious"
	GeofenceInvalid    GeofenceStatus = "invalid"
	GeofenceUnknown    GeofenceStatus = "unknown"
)

// GeofenceCheck is the result of comparing a punch location to its site.
type GeofenceCheck struct {
	Status         GeofenceStatus `json:"status"`
	DistanceMeters float64        `json:"distance_m"`
	RadiusMeters   float64        `json:"radius_m"`
}

// CheckGeofence grades at against site. Within radius is valid, up to twice the
// radius is suspicious, anything further is invalid. A missing or out of range
// point is unknown. A non-positive radius falls back to DefaultGeofenceRadius.
func CheckGeofence(at, site *GeoPoint, radius float64) GeofenceCheck {
	if radius <= 0 {
		radius = DefaultGeofenceRadius
	}
	check := GeofenceCheck{Status: GeofenceUnknown, RadiusMeters: radius}
	if at == nil || site == nil || !at.Valid() || !site.Valid() {
		return check
	}
	check.DistanceMeters = at.DistanceMeters(*site)
	switch {
	case check.DistanceMeters <= radius:
		check.Status = GeofenceValid
	case check.DistanceMeters <= 2*radius:
		check.Status = GeofenceSuspicious
	default:
		check.Status = GeofenceInvalid
	}
	return check
}

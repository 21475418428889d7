package domain_test

import (
	"math"
	"testing"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

var puertaDelSol = domain.GeoPoint{Latitude: 40.4168, Longitude: -3.7038}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	tests := []struct {
		name string
		to   domain.GeoPoint
		want float64
	}{
		{name: "same point", to: puertaDelSol, want: 0},
		{name: "next street", to: domain.GeoPoint{Latitude: 40.4180, Longitude: -3.7050}, want: 167.7},
		{name: "barcelona", to: domain.GeoPoint{Latitude: 41.3874, Longitude: 2.1686}, want: 505095.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, puertaDelSol.DistanceMeters(tt.to), 0.11)
			assert.InDelta(t, tt.want, tt.to.DistanceMeters(puertaDelSol), 0.11)
		})
	}
}

func TestGeoPoint_Valid(t *testing.T) {
	assert.True(t, puertaDelSol.Valid())
	assert.True(t, domain.GeoPoint{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, domain.GeoPoint{Latitude: 90.5, Longitude: 0}.Valid())
	assert.False(t, domain.GeoPoint{Latitude: 0, Longitude: -181}.Valid())
	assert.False(t, domain.GeoPoint{Latitude: math.NaN(), Longitude: 0}.Valid())
}

func TestCheckGeofence(t *testing.T) {
	site := puertaDelSol
	tests := []struct {
		name   string
		at     *domain.GeoPoint
		site   *domain.GeoPoint
		radius float64
		want   domain.GeofenceStatus
	}{
		{name: "on site", at: &domain.GeoPoint{Latitude: 40.4180, Longitude: -3.7050}, site: &site, radius: 500, want: domain.GeofenceValid},
		{name: "between one and two radii", at: &domain.GeoPoint{Latitude: 40.4238, Longitude: -3.7038}, site: &site, radius: 500, want: domain.GeofenceSuspicious},
		{name: "beyond two radii", at: &domain.GeoPoint{Latitude: 40.4300, Longitude: -3.7038}, site: &site, radius: 500, want: domain.GeofenceInvalid},
		{name: "default radius", at: &domain.GeoPoint{Latitude: 40.4180, Longitude: -3.7050}, site: &site, radius: 0, want: domain.GeofenceValid},
		{name: "no location", at: nil, site: &site, radius: 500, want: domain.GeofenceUnknown},
		{name: "no site", at: &site, site: nil, radius: 500, want: domain.GeofenceUnknown},
		{name: "out of range", at: &domain.GeoPoint{Latitude: 120, Longitude: 0}, site: &site, radius: 500, want: domain.GeofenceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := domain.CheckGeofence(tt.at, tt.site, tt.radius)
			assert.Equal(t, tt.want, check.Status)
			if tt.want == domain.GeofenceUnknown {
				assert.Zero(t, check.DistanceMeters)
			}
		})
	}

	assert.Equal(t, domain.DefaultGeofenceRadius, domain.CheckGeofence(nil, nil, -1).RadiusMeters)
}

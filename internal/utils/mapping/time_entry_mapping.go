package mapping

import (
	"database/sql"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/models"
	"github.com/shopspring/decimal"
)

func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	m := models.TimeEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		ClockIn:        d.ClockIn,
		ClockOut:       ToNullTime(d.ClockOut),
		OfflineID:      ToNullString(d.OfflineID),
		Notes:          ToNullString(d.Notes),
	}
	if d.TotalMinutes != nil {
		m.TotalMinutes = sql.NullInt32{Int32: int32(*d.TotalMinutes), Valid: true}
	}
	m.LatIn, m.LngIn, m.AddressIn = toLocationColumns(d.InLocation)
	m.LatOut, m.LngOut, m.AddressOut = toLocationColumns(d.OutLocation)
	return m
}

func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	d := domain.TimeEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		ClockIn:        m.ClockIn,
		ClockOut:       FromNullTime(m.ClockOut),
		OfflineID:      FromNullString(m.OfflineID),
		Notes:          FromNullString(m.Notes),
	}
	if m.TotalMinutes.Valid {
		minutes := int(m.TotalMinutes.Int32)
		d.TotalMinutes = &minutes
	}
	d.InLocation = fromLocationColumns(m.LatIn, m.LngIn, m.AddressIn)
	d.OutLocation = fromLocationColumns(m.LatOut, m.LngOut, m.AddressOut)
	return d
}

// coordinates are stored with seven decimals, about a centimeter
const coordinatePlaces = 7

func toLocationColumns(l *domain.Location) (lat, lng decimal.NullDecimal, address sql.NullString) {
	if l == nil {
		return
	}
	lat = decimal.NewNullDecimal(decimal.NewFromFloat(l.Latitude).Round(coordinatePlaces))
	lng = decimal.NewNullDecimal(decimal.NewFromFloat(l.Longitude).Round(coordinatePlaces))
	address = ToNullString(l.Address)
	return
}

func fromLocationColumns(lat, lng decimal.NullDecimal, address sql.NullString) *domain.Location {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Location{
		GeoPoint: domain.GeoPoint{
			Latitude:  lat.Decimal.InexactFloat64(),
			Longitude: lng.Decimal.InexactFloat64(),
		},
		Address: FromNullString(address),
	}
}

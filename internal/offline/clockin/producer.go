// Package clockin is the slide-to-confirm time clock. A punch is shown
// immediately and then delivered, queued or rolled back.
package clockin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/offline/optimistic"
	"github.com/SscSPs/solar_backoffice/internal/offline/queue"
	"github.com/SscSPs/solar_backoffice/internal/offline/syncer"
	"github.com/google/uuid"
)

// SlideThreshold is the fraction of the track that confirms a punch.
const SlideThreshold = 0.9

// Status is the clock state shown to the worker.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusClockedIn  Status = "clocked_in"
	StatusClockedOut Status = "clocked_out"
)

// Outcome is what happened to a slide.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDelivered Outcome = "delivered"
	OutcomeQueued    Outcome = "queued"
	OutcomeDropped   Outcome = "dropped"
	// OutcomeOutsideSite is returned only when the geofence is enforced.
	OutcomeOutsideSite Outcome = "outside_site"
)

// Punch is one clock action as displayed locally.
type Punch struct {
	Action  queue.Action `json:"action"`
	At      time.Time    `json:"at"`
	QueueID string       `json:"queueId,omitempty"`

	Geofence *domain.GeofenceCheck `json:"geofence,omitempty"`
}

// LocationSource reports the device position. A nil location means no fix.
type LocationSource interface {
	CurrentLocation(ctx context.Context) (*domain.Location, error)
}

// StaticLocation is a LocationSource holding the last position given to Set.
type StaticLocation struct {
	mu  sync.Mutex
	loc *domain.Location
}

func (s *StaticLocation) Set(loc *domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = loc
}

func (s *StaticLocation) CurrentLocation(context.Context) (*domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc, nil
}

// Producer turns slides into time_entry mutations.
type Producer struct {
	mu        sync.Mutex
	status    Status
	clockedAt *time.Time

	punches   optimistic.List[Punch]
	transport syncer.Transport
	store     queue.Store
	online    syncer.OnlineChecker
	endpoints syncer.Endpoints
	projectID *string
	logger    *slog.Logger
	now       func() time.Time

	locator         LocationSource
	site            *domain.GeoPoint
	radius          float64
	requireGeofence bool
}

// Options configures a Producer.
type Options struct {
	Transport syncer.Transport
	Store     queue.Store
	Online    syncer.OnlineChecker
	Endpoints syncer.Endpoints
	ProjectID *string
	Logger    *slog.Logger
	Now       func() time.Time

	// Locator attaches the device position to each punch when set.
	Locator LocationSource
	// Site enables the geofence check against the project location.
	// GeofenceRadius defaults to domain.DefaultGeofenceRadius.
	Site           *domain.GeoPoint
	GeofenceRadius float64
	// RequireGeofence refuses punches graded invalid. Suspicious and unknown
	// locations are still recorded, with the check attached.
	RequireGeofence bool
}

func NewProducer(opts Options) *Producer {
	p := &Producer{
		status:    StatusIdle,
		transport: opts.Transport,
		store:     opts.Store,
		online:    opts.Online,
		endpoints: opts.Endpoints,
		projectID: opts.ProjectID,
		logger:    opts.Logger,
		now:       opts.Now,

		locator:         opts.Locator,
		site:            opts.Site,
		radius:          opts.GeofenceRadius,
		requireGeofence: opts.RequireGeofence,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.online == nil {
		p.online = syncer.OnlineFunc(func() bool { return false })
	}
	return p
}

// Status returns the current clock state.
func (p *Producer) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Resume marks the worker as already clocked in since the given time, so the
// next slide clocks out. A zero since leaves the clock-in time unknown.
func (p *Producer) Resume(since time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = StatusClockedIn
	p.clockedAt = nil
	if !since.IsZero() {
		at := since
		p.clockedAt = &at
	}
}

// Duration is the time elapsed since clock-in, or zero when not clocked in.
func (p *Producer) Duration(now time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusClockedIn || p.clockedAt == nil {
		return 0
	}
	return now.Sub(*p.clockedAt)
}

// Punches returns the local punch history with confirmation state.
func (p *Producer) Punches() []optimistic.Entry[Punch] {
	return p.punches.Items()
}

// Slide handles a completed drag. progress is the fraction of the track covered.
// Slides are serialized; failures are reported through the Outcome.
func (p *Producer) Slide(ctx context.Context, progress float64) Outcome {
	if progress < SlideThreshold {
		return OutcomeIgnored
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	prevStatus, prevClockedAt := p.status, p.clockedAt

	loc, check := p.locate(ctx)
	if p.requireGeofence && check != nil && check.Status == domain.GeofenceInvalid {
		p.logger.Warn("punch refused outside site geofence",
			slog.Float64("distance_m", check.DistanceMeters),
			slog.Float64("radius_m", check.RadiusMeters))
		return OutcomeOutsideSite
	}

	payload := dto.ClockPayload{Timestamp: now, ProjectID: p.projectID, Location: loc, Geofence: check}
	action := queue.ActionClockIn
	if p.status == StatusClockedIn {
		action = queue.ActionClockOut
		if p.clockedAt != nil {
			secs := int64(now.Sub(*p.clockedAt) / time.Second)
			payload.DurationSeconds = &secs
		}
		p.status = StatusClockedOut
		p.clockedAt = nil
	} else {
		p.status = StatusClockedIn
		at := now
		p.clockedAt = &at
	}

	// The same offline id goes on the direct attempt and on the queued copy, so
	// the server drops the copy if the direct attempt committed before failing.
	offlineID := uuid.NewString()
	punch := Punch{Action: action, At: now, Geofence: check}
	localID := p.punches.Insert(punch)
	logger := p.logger.With(
		slog.String("action", string(action)),
		slog.String("local_id", localID),
		slog.String("offline_id", offlineID))

	if p.online.IsOnline() && p.transport != nil {
		err := p.deliver(ctx, offlineID, action, payload, now)
		if err == nil {
			p.punches.Confirm(localID, "", punch)
			logger.Info("punch delivered")
			return OutcomeDelivered
		}
		logger.Warn("punch delivery failed, queueing", slog.String("error", err.Error()))
	}

	item, err := p.enqueue(ctx, offlineID, action, payload, now)
	if err != nil {
		p.punches.Reject(localID)
		p.status, p.clockedAt = prevStatus, prevClockedAt
		if errors.Is(err, queue.ErrDurabilityDisabled) {
			logger.Error("punch dropped, offline storage unavailable")
		} else {
			logger.Error("punch dropped", slog.String("error", err.Error()))
		}
		return OutcomeDropped
	}

	punch.QueueID = item.ID
	p.punches.Replace(localID, punch)
	logger.Info("punch queued")
	return OutcomeQueued
}

// locate reads the device position and grades it against the site, if one is set.
func (p *Producer) locate(ctx context.Context) (*domain.Location, *domain.GeofenceCheck) {
	var loc *domain.Location
	if p.locator != nil {
		var err error
		loc, err = p.locator.CurrentLocation(ctx)
		if err != nil {
			p.logger.Warn("location unavailable, punching without it", slog.String("error", err.Error()))
			loc = nil
		}
	}
	if p.site == nil {
		return loc, nil
	}
	var at *domain.GeoPoint
	if loc != nil {
		at = &loc.GeoPoint
	}
	check := domain.CheckGeofence(at, p.site, p.radius)
	return loc, &check
}

func (p *Producer) deliver(ctx context.Context, offlineID string, action queue.Action, payload dto.ClockPayload, at time.Time) error {
	path, ok := p.endpoints.Resolve(queue.EntityTimeEntry)
	if !ok {
		return errors.New("no endpoint for time entries")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.transport.Deliver(ctx, path, dto.SyncEnvelope{
		Action:           string(action),
		Data:             data,
		OfflineTimestamp: at,
		OfflineID:        offlineID,
	})
}

func (p *Producer) enqueue(ctx context.Context, offlineID string, action queue.Action, payload dto.ClockPayload, at time.Time) (queue.Item, error) {
	if p.store == nil {
		return queue.Item{}, queue.ErrDurabilityDisabled
	}
	return p.store.AddWithID(ctx, offlineID, queue.EntityTimeEntry, action, payload, at)
}

package manager

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Status is the lifecycle phase of a refresh session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// State is what the session hands to its consumer after every transition.
// Snapshot survives a failed refresh so stale data keeps being shown.
type State struct {
	Status    Status
	Place     Place
	Units     UnitSystem
	Snapshot  *Snapshot
	NextHours []HourlyPoint
	Message   string
}

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// SessionConfig controls a refresh session. Zero values fall back to a
// 60-second interval, a 6-hour window and metric units.
type SessionConfig struct {
	Units    UnitSystem
	Interval time.Duration
	Window   int
}

// Session binds one selected place and unit system to a recurring fetch
// schedule. A fetch is issued immediately on place selection and on unit
// change, both of which restart the interval timer; timer ticks re-fetch
// without shifting the timer phase. Results are tokened: a response that
// was superseded by a newer trigger is discarded, never applied.
//
// All session state is owned by a single loop goroutine; public methods
// post commands to it and never block once the session is closed.
type Session struct {
	forecaster Forecaster
	interval   time.Duration
	window     int

	ctx    context.Context
	cancel context.CancelFunc

	cmds    chan func()
	updates chan State

	// owned by the run loop
	place    Place
	selected bool
	units    UnitSystem
	status   Status
	snapshot *Snapshot
	message  string
	token    uint64
	timer    refreshTimer

	newTimer timerFactory
}

// NewSession starts a session loop. Close (or cancelling ctx) tears it down.
func NewSession(ctx context.Context, forecaster Forecaster, cfg SessionConfig) *Session {
	return newSession(ctx, forecaster, cfg, newGocronTimer)
}

func newSession(ctx context.Context, forecaster Forecaster, cfg SessionConfig, timers timerFactory) *Session {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindowHours
	}
	if cfg.Units == "" {
		cfg.Units = Metric
	}

	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		forecaster: forecaster,
		interval:   cfg.Interval,
		window:     cfg.Window,
		ctx:        ctx,
		cancel:     cancel,
		cmds:       make(chan func(), 8),
		updates:    make(chan State, 1),
		units:      cfg.Units,
		status:     StatusIdle,
		newTimer:   timers,
	}

	go s.run()

	return s
}

// Updates delivers the latest State after every transition. Only the most
// recent state is retained; a slow consumer skips intermediate ones. The
// channel is closed when the session shuts down.
func (s *Session) Updates() <-chan State {
	return s.updates
}

// Select makes place the active location and fetches immediately.
func (s *Session) Select(place Place) {
	s.do(func() {
		s.place = place
		s.selected = true
		s.refresh(true)
	})
}

// SetUnits switches the unit system. While a place is selected this
// invalidates the held snapshot's units and forces an immediate re-fetch.
func (s *Session) SetUnits(units UnitSystem) {
	s.do(func() {
		if units == s.units {
			return
		}
		s.units = units
		if s.selected {
			s.refresh(true)
		} else {
			s.publish()
		}
	})
}

// Reset drops the selected place and snapshot and stops the timer. A
// non-empty message puts the session in the error state, for flows like a
// search that matched nothing.
func (s *Session) Reset(message string) {
	s.do(func() {
		s.place = Place{}
		s.selected = false
		s.snapshot = nil
		s.message = message
		s.token++ // in-flight responses must not resurrect the old place
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		if message == "" {
			s.status = StatusIdle
		} else {
			s.status = StatusError
		}
		s.publish()
	})
}

// Close stops the timer and the session loop.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) do(fn func()) {
	select {
	case s.cmds <- fn:
	case <-s.ctx.Done():
	}
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.ctx.Done():
			if s.timer != nil {
				s.timer.Stop()
				s.timer = nil
			}
			close(s.updates)
			return
		}
	}
}

// refresh issues a tokened fetch for the current place and units. restart
// re-arms the interval timer from this moment; ticks pass false so the
// timer phase is preserved.
func (s *Session) refresh(restart bool) {
	s.token++
	token := s.token
	place := s.place
	units := s.units

	s.status = StatusLoading
	s.publish()

	if restart {
		s.rearm()
	}

	go func() {
		snapshot, err := s.forecaster.Fetch(s.ctx, place, units)
		s.do(func() {
			s.apply(token, snapshot, err)
		})
	}()
}

func (s *Session) apply(token uint64, snapshot Snapshot, err error) {
	if token != s.token {
		// Superseded mid-flight; a newer request owns the display.
		return
	}

	if err != nil {
		s.status = StatusError
		s.message = fmt.Sprintf("could not update weather: %v", err)
		s.publish()
		return
	}

	s.snapshot = &snapshot
	s.status = StatusReady
	s.message = ""
	s.publish()
}

func (s *Session) rearm() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.newTimer(s.interval, func() {
		s.do(func() {
			if s.selected {
				s.refresh(false)
			}
		})
	})
}

func (s *Session) publish() {
	state := State{
		Status:  s.status,
		Units:   s.units,
		Message: s.message,
	}
	if s.selected {
		state.Place = s.place
	}
	if s.snapshot != nil {
		state.Snapshot = s.snapshot
		state.NextHours = NextHours(s.snapshot.Hourly, s.snapshot.Current.ObservedAt, s.window)
	}

	for {
		select {
		case s.updates <- state:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

type refreshTimer interface {
	Stop()
}

type timerFactory func(interval time.Duration, fn func()) refreshTimer

type gocronTimer struct {
	scheduler *gocron.Scheduler
}

func newGocronTimer(interval time.Duration, fn func()) refreshTimer {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(interval).StartAt(time.Now().Add(interval)).Do(fn); err != nil {
		log.Printf("manager: schedule refresh: %v", err)
	}
	scheduler.StartAsync()
	return gocronTimer{scheduler: scheduler}
}

func (t gocronTimer) Stop() {
	t.scheduler.Stop()
}

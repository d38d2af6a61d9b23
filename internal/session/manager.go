// Package session owns the authenticated-user session and the
// idle-timeout state machine: Active -> Warned -> Expired.
//
// The manager is the single writer of the persisted session record, and
// record writes happen under the same mutex as the state they mirror.
// All entry points are safe for concurrent use; timer callbacks and
// activity signals serialize on one mutex, and every reschedule bumps a
// generation counter so a callback that lost the race against a reset
// observes a stale generation and does nothing. That guarantees at most
// one authoritative timer pair exists at any time.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/azbs/giftregistry/internal/models"
	"github.com/azbs/giftregistry/internal/repositories/localstore"
)

// Manager drives the session lifecycle. Construct with NewManager and
// call Restore once before reading any accessor.
type Manager struct {
	store   localstore.Repository
	sched   Scheduler
	log     zerolog.Logger
	timeout time.Duration // total idle window before expiry
	warning time.Duration // how long before expiry the warning shows

	// onExpire runs after an idle expiry completed, outside the lock.
	// It models the redirect to the unauthenticated entry screen.
	onExpire func()

	mu        sync.Mutex
	session   *models.Session
	loaded    bool
	warned    bool
	countdown int // seconds left while warned; display state only

	gen         uint64
	warnTimer   Timer
	expireTimer Timer
	tickTimer   Timer
}

// NewManager wires the state machine. sched may be nil, in which case
// real timers are used. onExpire may be nil.
func NewManager(store localstore.Repository, sched Scheduler, timeout, warning time.Duration, onExpire func(), log zerolog.Logger) *Manager {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Manager{
		store:    store,
		sched:    sched,
		log:      log,
		timeout:  timeout,
		warning:  warning,
		onExpire: onExpire,
	}
}

// Restore consults the persisted record once. A missing, unreadable or
// corrupt record means logged-out; it never fails the caller. If a
// session is restored the idle clock starts immediately.
func (m *Manager) Restore(ctx context.Context) {
	raw, err := m.store.Get(ctx, localstore.SessionKey)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = true

	if err != nil {
		m.log.Warn().Err(err).Msg("session record unreadable, starting logged out")
		return
	}
	if len(raw) == 0 {
		return
	}

	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Email == "" {
		m.log.Warn().Msg("session record corrupt, starting logged out")
		return
	}

	m.session = &s
	m.resetTimersLocked()
	m.log.Info().Str("email", s.Email).Msg("session restored")
}

// Login stores the session and starts the idle-timeout state machine.
// A storage failure is logged and tolerated: the session stays valid for
// this process, it just will not survive a restart.
func (m *Manager) Login(ctx context.Context, s *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The store write happens under the lock so a racing expiry cannot
	// erase the record of a session that wins the race.
	raw, err := json.Marshal(s)
	if err == nil {
		err = m.store.Set(ctx, localstore.SessionKey, raw)
	}
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to persist session record")
	}

	m.session = s
	m.loaded = true
	m.resetTimersLocked()
	m.log.Info().Str("email", s.Email).Msg("logged in")
}

// Logout clears the session, the persisted record and all pending
// timers. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, localstore.SessionKey); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session record")
	}
	if m.session == nil {
		return
	}
	m.session = nil
	m.stopTimersLocked()
	m.log.Info().Msg("logged out")
}

// OnActivity resets the idle clock. While Warned it also dismisses the
// warning and returns to Active. Without a session it is a no-op.
func (m *Manager) OnActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return
	}
	m.resetTimersLocked()
}

// DismissWarning confirms the user is still present: the pending expiry
// is cancelled and the idle window restarts from zero.
func (m *Manager) DismissWarning() {
	m.OnActivity()
}

// Session returns the current session, or nil when logged out.
func (m *Manager) Session() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.Session() != nil
}

// Loading is true until the persisted store has been consulted once.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.loaded
}

// WarningVisible reports whether the state machine is in Warned.
func (m *Manager) WarningVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warned
}

// CountdownRemaining is the number of seconds left on the warning
// countdown, zero when not warned.
func (m *Manager) CountdownRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.warned {
		return 0
	}
	return m.countdown
}

// stopTimersLocked invalidates every outstanding callback and stops the
// timer pair plus the countdown ticker.
func (m *Manager) stopTimersLocked() {
	m.gen++
	if m.warnTimer != nil {
		m.warnTimer.Stop()
		m.warnTimer = nil
	}
	if m.expireTimer != nil {
		m.expireTimer.Stop()
		m.expireTimer = nil
	}
	if m.tickTimer != nil {
		m.tickTimer.Stop()
		m.tickTimer = nil
	}
	m.warned = false
	m.countdown = 0
}

// resetTimersLocked clears prior timers before scheduling the new pair:
// the warning fires warning-window before the expiry does.
func (m *Manager) resetTimersLocked() {
	m.stopTimersLocked()
	gen := m.gen
	m.warnTimer = m.sched.AfterFunc(m.timeout-m.warning, func() { m.enterWarned(gen) })
	m.expireTimer = m.sched.AfterFunc(m.timeout, func() { m.expire(gen) })
}

func (m *Manager) enterWarned(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen || m.session == nil {
		return
	}
	m.warned = true
	m.countdown = int(m.warning / time.Second)
	m.tickTimer = m.sched.AfterFunc(time.Second, func() { m.tick(gen) })
	m.log.Info().Int("seconds", m.countdown).Msg("inactivity warning")
}

// tick drives the visible countdown. The expiry timer is authoritative;
// the countdown only mirrors it for display.
func (m *Manager) tick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen || !m.warned {
		return
	}
	if m.countdown > 0 {
		m.countdown--
	}
	if m.countdown > 0 {
		m.tickTimer = m.sched.AfterFunc(time.Second, func() { m.tick(gen) })
	}
}

func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.session == nil {
		m.mu.Unlock()
		return
	}
	m.session = nil
	m.stopTimersLocked()
	if err := m.store.Delete(context.Background(), localstore.SessionKey); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session record")
	}
	hook := m.onExpire
	m.mu.Unlock()

	m.log.Info().Msg("session expired due to inactivity")
	if hook != nil {
		hook()
	}
}

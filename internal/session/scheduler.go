package session

import "time"

// Timer is the subset of *time.Timer the state machine needs.
type Timer interface {
	Stop() bool
}

// Scheduler abstracts timer creation so the idle-timeout state machine
// can be driven with synthetic time in tests.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewScheduler returns the production Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler { return realScheduler{} }

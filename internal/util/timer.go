package util

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// RetryTimer is interface retry
type RetryTimer interface {
	Run(RetryTimerCallback) error
}

// RetryTimerCallback is callback function type for RetryTimer. Returning
// exit=true or an error stops retry.
type RetryTimerCallback func(seq int) (exit bool, err error)

// RetryTimerFactory is constructor type of RetryTimer
type RetryTimerFactory func(limit int) RetryTimer

// ErrRetryLimitExceeded indicates error message for exceeding limit of RetryTimer
var ErrRetryLimitExceeded = errors.New("Limit of RetryTimer exceeded")

type expRetryTimer struct {
	limit      int
	retryCount int
	sleep      func(time.Duration)
}

// NewExpRetryTimer is constructor of expRetryTimer (Exponential backoff timer)
func NewExpRetryTimer(limit int) RetryTimer {
	return &expRetryTimer{limit: limit, sleep: time.Sleep}
}

// NewNoWaitRetryTimer retries without sleep. It is for testing.
func NewNoWaitRetryTimer(limit int) RetryTimer {
	return &expRetryTimer{limit: limit, sleep: func(time.Duration) {}}
}

func (x *expRetryTimer) Run(callback RetryTimerCallback) error {
	for i := 0; i < x.limit; i++ {
		exit, err := callback(i)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}

		if i+1 < x.limit {
			x.sleep(x.calcWaitTime())
		}
	}
	return ErrRetryLimitExceeded
}

func (x *expRetryTimer) calcWaitTime() time.Duration {
	wait := math.Pow(2.0, float64(x.retryCount))/64 + 0.5
	if wait > 2 {
		wait = 2
	}
	mSec := time.Millisecond * time.Duration(wait*1000)
	x.retryCount++
	return mSec
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"time"

	"code.hybscloud.com/iox"
)

// Timeout bounds how long a kernel or queue operation may wait.
//
// Forever (any negative value) waits indefinitely. NoWait makes a single
// immediate attempt. Positive values wait up to that duration.
type Timeout time.Duration

const (
	// NoWait performs one attempt and never suspends the caller.
	NoWait Timeout = 0
	// Forever waits until the operation succeeds.
	Forever Timeout = -1
)

// After converts d into a bounded Timeout. Negative durations clamp to NoWait,
// so After never yields Forever.
func After(d time.Duration) Timeout {
	if d < 0 {
		return NoWait
	}
	return Timeout(d)
}

// IsForever reports whether t waits indefinitely.
func (t Timeout) IsForever() bool { return t < 0 }

// deadline pins a Timeout to an absolute point in time so that several
// operations can share one wait budget.
type deadline struct {
	at      time.Time
	forever bool
}

func (t Timeout) deadline() deadline {
	if t.IsForever() {
		return deadline{forever: true}
	}
	return deadline{at: time.Now().Add(time.Duration(t))}
}

func (d deadline) expired() bool {
	return !d.forever && !time.Now().Before(d.at)
}

// remaining returns the budget left as a Timeout: Forever stays Forever and
// an elapsed deadline becomes NoWait.
func (d deadline) remaining() Timeout {
	if d.forever {
		return Forever
	}
	r := time.Until(d.at)
	if r <= 0 {
		return NoWait
	}
	return Timeout(r)
}

// await calls try until it succeeds or the timeout elapses, backing off
// with iox.Backoff between attempts. try is always called at least once.
func await(timeout Timeout, try func() bool) bool {
	if try() {
		return true
	}
	if timeout == NoWait {
		return false
	}
	dl := timeout.deadline()
	var bo iox.Backoff
	for !dl.expired() {
		bo.Wait()
		if try() {
			return true
		}
	}
	return false
}

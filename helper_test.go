// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq_test

import (
	"fmt"
	"strings"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/taskq"
)

// execExpr drives a protocol to completion on ep via Step+Advance,
// retrying on iox.ErrWouldBlock.
func execExpr[R any](ep *taskq.Endpoint, protocol kont.Expr[R]) R {
	result, susp := taskq.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = taskq.Advance(ep, susp)
		if err != nil {
			continue
		}
	}
	return result
}

// mustPanic runs f and fails unless it panics with a message containing want.
func mustPanic(t *testing.T, want string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, want) {
			t.Fatalf("panic %q does not contain %q", msg, want)
		}
	}()
	f()
}

// deadKernel creates queues but never moves an element.
type deadKernel struct {
	createErr error
}

func (k deadKernel) Create(uint32, uint32) (taskq.Handle, error) {
	if k.createErr != nil {
		return 0, k.createErr
	}
	return 1, nil
}

func (deadKernel) Destroy(taskq.Handle)                             {}
func (deadKernel) Append(taskq.Handle, []byte, taskq.Timeout) bool  { return false }
func (deadKernel) Prepend(taskq.Handle, []byte, taskq.Timeout) bool { return false }
func (deadKernel) Receive(taskq.Handle, []byte, taskq.Timeout) bool { return false }
func (deadKernel) Peek(taskq.Handle, []byte, taskq.Timeout) bool    { return false }
func (deadKernel) CountWaiting(taskq.Handle) uint32                 { return 0 }

// resource counts how many times it has been released.
type resource struct {
	id       int
	released *int
}

func (r resource) Release() { *r.released++ }

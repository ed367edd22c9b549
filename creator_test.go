// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq_test

import (
	"testing"

	"code.hybscloud.com/taskq"
)

func TestCreatorCapacity(t *testing.T) {
	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"1K int64", taskq.NewQueueCreator1K[int64](nil).Capacity(), 1024/8 + 1},
		{"16K int32", taskq.NewQueueCreator16K[int32](nil).Capacity(), 16384/4 + 1},
		{"1K byte", taskq.NewQueueCreator1K[byte](nil).Capacity(), 1025},
		{"1K empty", taskq.NewQueueCreator1K[struct{}](nil).Capacity(), 1025},
		{"1K oversized", taskq.NewQueueCreator1K[[2048]byte](nil).Capacity(), 1},
		{"1K exact", taskq.NewQueueCreator1K[[1024]byte](nil).Capacity(), 2},
		{"custom", taskq.NewQueueCreator[uint16](nil, 10).Capacity(), 6},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: Capacity got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestCreatorStream(t *testing.T) {
	k := taskq.NewSoftKernel()
	creator := taskq.NewQueueCreator16K[uint64](k)
	tx, rx := creator.CreateStream()
	if tx.MaxLen() != creator.Capacity() {
		t.Fatalf("MaxLen got %d, want %d", tx.MaxLen(), creator.Capacity())
	}
	if tx.Serial() != rx.Serial() {
		t.Fatal("sender and receiver must share one queue")
	}

	tx.Send(5)
	tx.Close()
	if k.Live() != 1 {
		t.Fatal("queue closed while the receiver still holds it")
	}
	if v := rx.Receive(); v != 5 {
		t.Fatalf("Receive got %d, want 5", v)
	}
	rx.Close()
	if k.Live() != 0 {
		t.Fatalf("Live got %d, want 0", k.Live())
	}
}

func TestQueueRefCloneAndClose(t *testing.T) {
	k := taskq.NewSoftKernel()
	released := 0
	r1 := taskq.Share(taskq.NewQueueOn[resource](k, 2))
	r2 := r1.Clone()
	r3 := r2.Clone()

	_ = r1.Append(resource{released: &released}, taskq.NoWait)
	r1.Close()
	r1.Close()
	r2.Close()
	if k.Live() != 1 || released != 0 {
		t.Fatalf("queue closed early: live=%d released=%d", k.Live(), released)
	}
	r3.Close()
	if k.Live() != 0 || released != 1 {
		t.Fatalf("last Close must close the queue: live=%d released=%d", k.Live(), released)
	}
}

func TestQueueRefUseAfterClosePanics(t *testing.T) {
	r1 := taskq.Share(taskq.NewQueue[int](2))
	r2 := r1.Clone()
	defer r2.Close()

	r1.Close()
	// The queue is still alive for r2, but r1 no longer reaches it.
	mustPanic(t, "nil pointer dereference", func() { r1.Send(1) })
	mustPanic(t, "taskq: clone of closed queue handle", func() { r1.Clone() })
	r2.Send(2)
	if v, err := r2.TryReceive(); err != nil || v != 2 {
		t.Fatalf("live handle got (%d, %v), want (2, nil)", v, err)
	}
}

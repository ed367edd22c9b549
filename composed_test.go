// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq_test

import (
	"reflect"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/taskq"
)

func TestComposeRoutesLegs(t *testing.T) {
	out := taskq.NewQueue[int](4)
	in := taskq.NewQueue[int](4)
	defer out.Close()
	defer in.Close()

	c := taskq.Compose[int](out, in)
	c.Send(1)
	c.SendSlice([]int{2, 3})
	if out.Len() != 3 || in.Len() != 0 {
		t.Fatalf("sends must go to the send leg: out=%d in=%d", out.Len(), in.Len())
	}
	if _, err := c.TryReceive(); !iox.IsWouldBlock(err) {
		t.Fatalf("receive leg is empty, got %v", err)
	}

	in.SendSlice([]int{7, 8, 9})
	if v := c.Receive(); v != 7 {
		t.Fatalf("Receive got %d, want 7", v)
	}
	if got := c.ReceiveVec(5); !reflect.DeepEqual(got, []int{8, 9}) {
		t.Fatalf("ReceiveVec got %v", got)
	}
	if c.Sender() != taskq.SendStream[int](out) || c.Receiver() != taskq.ReceiveStream[int](in) {
		t.Fatal("legs not returned as supplied")
	}
}

func TestComposeLoopbackMatchesQueue(t *testing.T) {
	direct := taskq.NewQueue[int](2)
	leg := taskq.NewQueue[int](2)
	defer direct.Close()
	defer leg.Close()
	composed := taskq.ComposeTimeout[int](leg, leg)

	for _, s := range []taskq.DuplexTimeoutStream[int]{direct, composed} {
		if n := s.SendSliceTimeout([]int{1, 2, 3}, 0); n != 1 {
			t.Fatalf("%T: not accepted got %d, want 1", s, n)
		}
		if err := s.SendTimeout(4, 5*time.Millisecond); !iox.IsWouldBlock(err) {
			t.Fatalf("%T: expected ErrWouldBlock, got %v", s, err)
		}
		if v, err := s.ReceiveTimeout(0); err != nil || v != 1 {
			t.Fatalf("%T: got (%d, %v), want 1", s, v, err)
		}
		buf := make([]int, 2)
		if n := s.ReceiveSliceTimeout(buf, 5*time.Millisecond); n != 1 || buf[0] != 2 {
			t.Fatalf("%T: ReceiveSliceTimeout got %v", s, buf[:n])
		}
		if rest := s.SendVecTimeout([]int{5}, 0); rest != nil {
			t.Fatalf("%T: unsent %v", s, rest)
		}
		if got := s.ReceiveVecTimeout(3, 0); !reflect.DeepEqual(got, []int{5}) {
			t.Fatalf("%T: ReceiveVecTimeout got %v", s, got)
		}
	}
}

func TestComposeDuplexPair(t *testing.T) {
	creator := taskq.NewQueueCreator1K[string](nil)
	abTx, abRx := creator.CreateStream()
	baTx, baRx := creator.CreateStream()
	a := taskq.ComposeTimeout[string](abTx, baRx)
	b := taskq.ComposeTimeout[string](baTx, abRx)
	defer a.Close()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msg := b.Receive()
			if msg == "" {
				return
			}
			b.Send("echo " + msg)
		}
	}()
	for _, msg := range []string{"x", "y"} {
		a.Send(msg)
		if got := a.Receive(); got != "echo "+msg {
			t.Fatalf("got %q, want %q", got, "echo "+msg)
		}
	}
	a.Send("")
	<-done
}

func TestComposeCloseReleasesLegs(t *testing.T) {
	k := taskq.NewSoftKernel()
	creator := taskq.NewQueueCreator1K[int](k)
	tx, rx := creator.CreateStream()
	c := taskq.Compose[int](tx, rx)
	if k.Live() != 1 {
		t.Fatalf("Live got %d, want 1", k.Live())
	}
	c.Close()
	if k.Live() != 0 {
		t.Fatalf("Live after Close got %d, want 0", k.Live())
	}
}

func TestComposeSendTimeoutMixedLegs(t *testing.T) {
	out := taskq.NewQueue[int](1)
	defer out.Close()
	// A receive leg without timeout support.
	var in taskq.ReceiveStream[int] = taskq.NewQueue[int](2)
	c := taskq.ComposeSendTimeout[int](out, in)
	defer c.Close()

	if err := c.SendTimeout(1, 0); err != nil {
		t.Fatalf("SendTimeout: %v", err)
	}
	if err := c.SendTimeout(2, 5*time.Millisecond); !iox.IsWouldBlock(err) {
		t.Fatalf("full send leg: expected ErrWouldBlock, got %v", err)
	}
	if _, err := c.TryReceive(); !iox.IsWouldBlock(err) {
		t.Fatalf("receive leg is empty, got %v", err)
	}
	if c.Sender() != taskq.SendTimeoutStream[int](out) || c.Receiver() != in {
		t.Fatal("legs not returned as supplied")
	}
}

func TestComposeReceiveTimeoutMixedLegs(t *testing.T) {
	var out taskq.SendStream[int] = taskq.NewQueue[int](2)
	in := taskq.NewQueue[int](2)
	c := taskq.ComposeReceiveTimeout[int](out, in)
	defer c.Close()

	if _, err := c.ReceiveTimeout(5 * time.Millisecond); !iox.IsWouldBlock(err) {
		t.Fatalf("empty receive leg: expected ErrWouldBlock, got %v", err)
	}
	in.Send(3)
	if v, err := c.ReceiveTimeout(0); err != nil || v != 3 {
		t.Fatalf("ReceiveTimeout got (%d, %v), want (3, nil)", v, err)
	}
	c.Send(4)
	if v, _ := out.(*taskq.Queue[int]).TryReceive(); v != 4 {
		t.Fatalf("send leg got %d, want 4", v)
	}
}

func TestComposeMixedCloseReleasesLegs(t *testing.T) {
	k := taskq.NewSoftKernel()
	creator := taskq.NewQueueCreator1K[int](k)
	tx1, rx1 := creator.CreateStream()
	tx2, rx2 := creator.CreateStream()
	a := taskq.ComposeSendTimeout[int](tx1, rx2)
	b := taskq.ComposeReceiveTimeout[int](tx2, rx1)
	if k.Live() != 2 {
		t.Fatalf("Live got %d, want 2", k.Live())
	}
	a.Close()
	b.Close()
	if k.Live() != 0 {
		t.Fatalf("Live after Close got %d, want 0", k.Live())
	}
}

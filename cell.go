// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import "code.hybscloud.com/atomix"

// Cell is a single slot holding at most one owned *T. Swap is its only
// mutator: there is no read that leaves the slot in place, so no goroutine
// can hold a reference into the cell while another replaces it.
//
// Cell never blocks. The zero value is an empty cell.
type Cell[T any] struct {
	p atomix.Pointer[T]
}

// NewCell returns a cell holding initial, or an empty cell if initial is nil.
// The cell takes ownership of initial.
func NewCell[T any](initial *T) *Cell[T] {
	c := &Cell[T]{}
	c.p.StoreRelease(initial)
	return c
}

// Swap installs v (nil empties the cell) and returns the previous value,
// or nil. The exchange is a single atomic step.
func (c *Cell[T]) Swap(v *T) *T {
	return c.p.SwapAcqRel(v)
}

// Close empties the cell and releases the value it held, if that value
// implements Releaser.
func (c *Cell[T]) Close() {
	if old := c.p.SwapAcqRel(nil); old != nil {
		if r, ok := any(old).(Releaser); ok {
			r.Release()
		} else {
			release(*old)
		}
	}
}

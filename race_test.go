// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package taskq_test

// raceEnabled reports a -race build. On amd64 atomix acquire loads and
// release stores are plain moves, so the detector reports a Peek that
// reads a slot while a sender refills it.
const raceEnabled = true

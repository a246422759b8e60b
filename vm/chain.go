// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// Errors returned by Feedback.
var (
	ErrNoOutput = errors.New("no output")
	ErrDeadlock = errors.New("all machines waiting for input")
)

// Feedback connects the given instances in a loop: the output of each
// instance is pushed to the input of the next one, and the output of the last
// instance is fed back to the first. The seed value is pushed to the first
// instance before starting. Any input already queued on the instances (e.g.
// configuration values) is consumed first.
//
// Instances are run in turn until the last one halts. Feedback then returns
// the last value it produced. It returns ErrNoOutput if the last instance
// halted without producing any output, and ErrDeadlock if no instance can
// make progress before the last one has halted.
func Feedback(ms []*Instance, seed Cell) (Cell, error) {
	if len(ms) == 0 {
		return 0, errors.New("Feedback: no instances")
	}
	ms[0].PushInput(seed)
	last := ms[len(ms)-1]
	var (
		result Cell
		got    bool
	)
	for !last.Halted() {
		progress := false
		for n, m := range ms {
			next := ms[(n+1)%len(ms)]
			for {
				sig, err := m.Run()
				if err != nil {
					return 0, errors.Wrapf(err, "Feedback: instance %d", n)
				}
				if sig != ProducedOutput {
					break
				}
				v, _ := m.PopOutput()
				if m == last {
					result, got = v, true
				}
				next.PushInput(v)
				progress = true
			}
		}
		if !progress && !last.Halted() {
			return 0, errors.WithStack(ErrDeadlock)
		}
	}
	if !got {
		return 0, errors.WithStack(ErrNoOutput)
	}
	return result, nil
}

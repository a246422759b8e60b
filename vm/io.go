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

// PushInput appends the given values to the input queue. It can be called at
// any time, including before the first call to Run or from an InHandler.
func (i *Instance) PushInput(v ...Cell) {
	i.input = append(i.input, v...)
}

// PendingInput returns the number of queued input values.
func (i *Instance) PendingInput() int {
	return len(i.input)
}

// Output returns the output buffer without draining it. Note that value
// changes will be reflected in the instance's buffer until the next output
// instruction.
func (i *Instance) Output() []Cell {
	return i.output
}

// PopOutput removes the oldest value from the output buffer and returns it.
// ok is false if the buffer is empty.
func (i *Instance) PopOutput() (v Cell, ok bool) {
	if len(i.output) == 0 {
		return 0, false
	}
	v = i.output[0]
	i.output = i.output[1:]
	if len(i.output) == 0 {
		i.output = nil
	}
	return v, true
}

// DrainOutput empties the output buffer and returns its contents in the
// order they were produced.
func (i *Instance) DrainOutput() []Cell {
	out := i.output
	i.output = nil
	return out
}

// RunAll runs the instance until it halts or needs input that is not
// available, collecting output along the way. It returns the output produced
// (along with any output left in the buffer from previous calls) and the
// signal that stopped it: either Halted or NeedsInput.
func (i *Instance) RunAll() ([]Cell, Signal, error) {
	for {
		sig, err := i.Run()
		if err != nil {
			return i.DrainOutput(), sig, err
		}
		if sig != ProducedOutput {
			return i.DrainOutput(), sig, nil
		}
	}
}

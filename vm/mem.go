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

// Cell is the raw type stored in a memory location.
type Cell int64

// MaxMemory is the maximum number of cells a Memory can grow to. Writing at or
// above this address fails with ErrInvalidAddress.
const MaxMemory = 1 << 26

// Memory is the VM address space. Addresses past the end of the slice are
// valid and read as 0. Writing to such an address grows the slice, up to
// MaxMemory cells.
type Memory []Cell

// NewMemory returns a Memory whose contents are a copy of program.
func NewMemory(program []Cell) Memory {
	m := make(Memory, len(program))
	copy(m, program)
	return m
}

// Read returns the value at address addr. It never grows the memory.
func (m Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, addressError(addr)
	}
	if addr >= Cell(len(m)) {
		return 0, nil
	}
	return m[addr], nil
}

// Write stores v at address addr, growing the memory as needed.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 || addr >= MaxMemory {
		return addressError(addr)
	}
	if addr >= Cell(len(*m)) {
		m.grow(int(addr) + 1)
	}
	(*m)[addr] = v
	return nil
}

// grow extends m to size cells. New cells are zeroed.
func (m *Memory) grow(size int) {
	if size <= cap(*m) {
		l := len(*m)
		*m = (*m)[:size]
		clear((*m)[l:])
		return
	}
	c := 2 * cap(*m)
	if c < size {
		c = size
	}
	t := make(Memory, size, c)
	copy(t, *m)
	*m = t
}

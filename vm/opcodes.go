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

import (
	"strconv"

	"github.com/pkg/errors"
)

// Opcode is an instruction opcode, the two lowest decimal digits of an
// instruction word.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJnz  Opcode = 5
	OpJz   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpArb  Opcode = 9
	OpHalt Opcode = 99
)

type opInfo struct {
	name   string
	params int
	dst    int // index of the write parameter, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:  {"add", 3, 2},
	OpMul:  {"mul", 3, 2},
	OpIn:   {"in", 1, 0},
	OpOut:  {"out", 1, -1},
	OpJnz:  {"jnz", 2, -1},
	OpJz:   {"jz", 2, -1},
	OpLt:   {"lt", 3, 2},
	OpEq:   {"eq", 3, 2},
	OpArb:  {"arb", 1, -1},
	OpHalt: {"halt", 0, -1},
}

var opcodeIndex = make(map[string]Opcode, len(opcodes))

func init() {
	for op, info := range opcodes {
		opcodeIndex[info.name] = op
	}
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(name string) (op Opcode, ok bool) {
	op, ok = opcodeIndex[name]
	return
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameters of op, or 0 for unknown opcodes.
func (op Opcode) Params() int {
	return opcodes[op].params
}

// Dst returns the index of the parameter op writes to, or -1 if op does not
// write to memory.
func (op Opcode) Dst() int {
	if info, ok := opcodes[op]; ok {
		return info.dst
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Mode is a parameter addressing mode.
type Mode Cell

// Parameter modes.
const (
	ModePosition  Mode = 0 // parameter is an address
	ModeImmediate Mode = 1 // parameter is the value
	ModeRelative  Mode = 2 // parameter is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// MaxParams is the maximum number of parameters of any instruction.
const MaxParams = 3

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]Mode
}

// Word encodes ins back into an instruction word.
func (ins Instruction) Word() Cell {
	w := Cell(ins.Op)
	f := Cell(100)
	for _, m := range ins.Modes {
		w += Cell(m) * f
		f *= 10
	}
	return w
}

// Decode decodes an instruction word. Modes of parameters beyond the opcode's
// parameter count are ignored and left as ModePosition.
func Decode(word Cell) (Instruction, error) {
	var ins Instruction
	if word < 0 {
		return ins, errors.Wrapf(ErrUnknownOpcode, "opcode %d", word)
	}
	ins.Op = Opcode(word % 100)
	info, ok := opcodes[ins.Op]
	if !ok {
		return ins, errors.Wrapf(ErrUnknownOpcode, "opcode %d", ins.Op)
	}
	word /= 100
	for n := 0; n < info.params; n++ {
		m := Mode(word % 10)
		word /= 10
		switch m {
		case ModePosition, ModeRelative:
		case ModeImmediate:
			if n == info.dst {
				return ins, errors.Wrapf(ErrInvalidMode, "%s: immediate mode for write parameter %d", ins.Op, n+1)
			}
		default:
			return ins, errors.Wrapf(ErrInvalidMode, "%s: mode %d for parameter %d", ins.Op, m, n+1)
		}
		ins.Modes[n] = m
	}
	return ins, nil
}

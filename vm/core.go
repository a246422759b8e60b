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

// Run resumes execution of the VM until the program halts, needs input or
// produces output, and returns the corresponding Signal.
//
// On NeedsInput, the input instruction has not been executed: PC still points
// to it and the next call to Run will retry it. On ProducedOutput, the output
// value has been appended to the output buffer and PC points to the next
// instruction.
//
// If the machine has already halted, Run does nothing and returns Halted. If
// an error occurs, the machine is Faulted, err is an *Error whose PC field
// points to the instruction that triggered the error, and any subsequent
// call to Run returns the same error.
func (i *Instance) Run() (sig Signal, err error) {
	switch i.state {
	case StateHalted:
		return Halted, nil
	case StateFaulted:
		return None, i.err
	}
	defer i.recoverFault(&sig, &err)
	i.insCount = 0
	i.state = StateRunning
	for {
		if i.maxSteps > 0 && i.insCount >= i.maxSteps {
			i.state = StateReady
			return None, errors.Wrapf(ErrStepLimit, "pc=%d: %d instructions", i.PC, i.insCount)
		}
		sig, err = i.exec()
		if err != nil || sig != None {
			return sig, err
		}
	}
}

// Step executes a single instruction. It returns None if the instruction did
// not halt or suspend the machine. Otherwise it behaves like Run.
func (i *Instance) Step() (sig Signal, err error) {
	switch i.state {
	case StateHalted:
		return Halted, nil
	case StateFaulted:
		return None, i.err
	}
	defer i.recoverFault(&sig, &err)
	i.state = StateRunning
	sig, err = i.exec()
	if err == nil && sig == None {
		i.state = StateReady
	}
	return sig, err
}

// recoverFault turns a runtime error raised while executing the instruction
// at PC into a fault.
func (i *Instance) recoverFault(sig *Signal, err *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case error:
			w, _ := i.Mem.Read(Cell(i.PC))
			*sig, *err = None, i.fault(i.PC, w, errors.Wrap(e, "recovered error"))
		default:
			panic(e)
		}
	}
}

func (i *Instance) fault(pc int, word Cell, err error) error {
	i.err = &Error{Err: err, PC: pc, Word: word}
	i.state = StateFaulted
	return i.err
}

// param returns the raw value of parameter n of the current instruction.
func (i *Instance) param(n int) Cell {
	if a := i.PC + 1 + n; a < len(i.Mem) {
		return i.Mem[a]
	}
	return 0
}

func (i *Instance) resolveRead(p Cell, m Mode) (Cell, error) {
	switch m {
	case ModePosition:
		return i.Mem.Read(p)
	case ModeImmediate:
		return p, nil
	case ModeRelative:
		return i.Mem.Read(i.rb + p)
	}
	return 0, errors.Wrapf(ErrInvalidMode, "mode %d", m)
}

func (i *Instance) resolveWrite(p Cell, m Mode) (Cell, error) {
	var addr Cell
	switch m {
	case ModePosition:
		addr = p
	case ModeRelative:
		addr = i.rb + p
	case ModeImmediate:
		return 0, errors.Wrap(ErrInvalidMode, "immediate mode write")
	default:
		return 0, errors.Wrapf(ErrInvalidMode, "mode %d", m)
	}
	if addr < 0 {
		return 0, addressError(addr)
	}
	return addr, nil
}

func (i *Instance) load(ins Instruction, n int) (Cell, error) {
	return i.resolveRead(i.param(n), ins.Modes[n])
}

func (i *Instance) store(ins Instruction, n int, v Cell) error {
	addr, err := i.resolveWrite(i.param(n), ins.Modes[n])
	if err != nil {
		return err
	}
	return i.Mem.Write(addr, v)
}

// exec decodes and executes the instruction at PC.
func (i *Instance) exec() (Signal, error) {
	pc := i.PC
	word, err := i.Mem.Read(Cell(pc))
	if err != nil {
		return None, i.fault(pc, word, err)
	}
	ins, err := Decode(word)
	if err != nil {
		return None, i.fault(pc, word, err)
	}
	if i.trace != nil {
		i.trace(i, ins)
	}

	switch ins.Op {
	case OpAdd, OpMul, OpLt, OpEq:
		var a, b Cell
		if a, err = i.load(ins, 0); err == nil {
			b, err = i.load(ins, 1)
		}
		if err != nil {
			break
		}
		var v Cell
		switch ins.Op {
		case OpAdd:
			v = a + b
		case OpMul:
			v = a * b
		case OpLt:
			if a < b {
				v = 1
			}
		case OpEq:
			if a == b {
				v = 1
			}
		}
		err = i.store(ins, 2, v)
	case OpIn:
		if len(i.input) == 0 && i.inH != nil {
			if err = i.inH(i); err != nil {
				err = errors.Wrap(err, "input handler")
				break
			}
		}
		if len(i.input) == 0 {
			i.state = StateAwaitingInput
			return NeedsInput, nil
		}
		if err = i.store(ins, 0, i.input[0]); err == nil {
			i.input = i.input[1:]
		}
	case OpOut:
		var v Cell
		if v, err = i.load(ins, 0); err != nil {
			break
		}
		i.PC += 2
		i.insCount++
		if i.outH != nil {
			if err = i.outH(i, v); err != nil {
				return None, i.fault(pc, word, errors.Wrap(err, "output handler"))
			}
			return None, nil
		}
		i.output = append(i.output, v)
		i.state = StateHaltedOutput
		return ProducedOutput, nil
	case OpJnz, OpJz:
		var v, t Cell
		if v, err = i.load(ins, 0); err == nil {
			t, err = i.load(ins, 1)
		}
		if err != nil {
			break
		}
		if (v != 0) == (ins.Op == OpJnz) {
			i.PC = int(t)
			i.insCount++
			return None, nil
		}
	case OpArb:
		var v Cell
		if v, err = i.load(ins, 0); err == nil {
			i.rb += v
		}
	case OpHalt:
		i.insCount++
		i.state = StateHalted
		return Halted, nil
	default:
		err = errors.Wrapf(ErrUnknownOpcode, "opcode %d", ins.Op)
	}
	if err != nil {
		return None, i.fault(pc, word, err)
	}
	i.PC += 1 + ins.Op.Params()
	i.insCount++
	return None, nil
}

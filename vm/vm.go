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

// State is the execution state of an Instance.
type State int

// Machine states.
const (
	StateReady         State = iota // not started yet, or stopped by a step limit
	StateRunning                    // inside Run or Step
	StateAwaitingInput              // suspended on an input instruction with an empty input queue
	StateHaltedOutput               // suspended right after an output instruction
	StateHalted                     // halt instruction executed, terminal
	StateFaulted                    // a fatal error occurred, terminal
)

var stateNames = [...]string{"ready", "running", "awaiting input", "halted on output", "halted", "faulted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "invalid state"
	}
	return stateNames[s]
}

// Signal tells the caller of Run why execution stopped.
type Signal int

// Run/Step signals.
const (
	// None is only returned by Step, for an instruction that did not suspend
	// or halt the machine.
	None Signal = iota
	// NeedsInput means that an input instruction found the input queue empty.
	// The instruction has not been executed and will be retried by the next
	// call to Run.
	NeedsInput
	// ProducedOutput means that exactly one value has been appended to the
	// output buffer.
	ProducedOutput
	// Halted means that the program executed the halt instruction.
	Halted
)

var signalNames = [...]string{"none", "needs input", "produced output", "halted"}

func (s Signal) String() string {
	if s < 0 || int(s) >= len(signalNames) {
		return "invalid signal"
	}
	return signalNames[s]
}

// Instance represents an intcode VM instance.
type Instance struct {
	PC       int    // Program Counter (aka. Instruction Pointer)
	Mem      Memory // Memory
	rb       Cell
	state    State
	err      error
	input    []Cell
	output   []Cell
	insCount int64
	maxSteps int64
	inH      InHandler
	outH     OutHandler
	trace    TraceFunc
	program  []Cell
}

// Option interface
type Option func(*Instance) error

// Input queues the given values as input.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.PushInput(v...); return nil }
}

// MaxSteps limits the number of instructions executed by a single call to
// Run. When the limit is reached, Run returns ErrStepLimit and the machine
// can be resumed by calling Run again. A limit <= 0 means no limit, which is
// the default.
func MaxSteps(n int64) Option {
	return func(i *Instance) error { i.maxSteps = n; return nil }
}

// TraceFunc is the function prototype for instruction tracing. It is called
// before each instruction is executed, with i.PC pointing at the instruction.
type TraceFunc func(i *Instance, ins Instruction)

// Trace sets a trace function.
func Trace(fn TraceFunc) Option {
	return func(i *Instance) error { i.trace = fn; return nil }
}

// InHandler is the function prototype for custom input handlers.
type InHandler func(i *Instance) error

// OutHandler is the function prototype for custom output handlers.
type OutHandler func(i *Instance, v Cell) error

// BindInHandler binds the provided input handler to the instance.
//
// The handler is called whenever an input instruction finds the input queue
// empty. It may push any number of values with PushInput. If it does not push
// anything, Run returns NeedsInput as usual.
func BindInHandler(h InHandler) Option {
	return func(i *Instance) error { i.inH = h; return nil }
}

// BindOutHandler binds the provided output handler to the instance.
//
// When an output handler is bound, output values are passed to the handler
// instead of being appended to the output buffer, and Run does not return
// ProducedOutput.
func BindOutHandler(h OutHandler) Option {
	return func(i *Instance) error { i.outH = h; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance.
//
// The program is copied into the instance memory, so the caller may reuse
// the slice, for example to create several instances from the same program.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem:     NewMemory(program),
		program: append([]Cell(nil), program...),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Load parses the program text and returns a new instance with the given
// initial input queued.
func Load(text string, input ...Cell) (*Instance, error) {
	prog, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return New(prog, Input(input...))
}

// State returns the current state of the instance.
func (i *Instance) State() State {
	return i.state
}

// Halted returns true once the program has executed the halt instruction.
func (i *Instance) Halted() bool {
	return i.state == StateHalted
}

// Err returns the fatal error that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}

// RelativeBase returns the current relative base.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// InstructionCount returns the number of instructions executed by the last
// call to Run, or the total count of instructions executed with Step since
// the last call to Run.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Peek returns the value at address addr.
func (i *Instance) Peek(addr Cell) (Cell, error) {
	return i.Mem.Read(addr)
}

// Poke stores v at address addr.
func (i *Instance) Poke(addr, v Cell) error {
	return i.Mem.Write(addr, v)
}

// Reset restores the program the instance was created with and clears all
// machine state: PC, relative base, input and output. Options are kept.
func (i *Instance) Reset() {
	i.Mem = NewMemory(i.program)
	i.PC = 0
	i.rb = 0
	i.state = StateReady
	i.err = nil
	i.input = nil
	i.output = nil
	i.insCount = 0
}

// Clone returns a deep copy of the instance, including memory, registers and
// pending input and output. Handlers and options are shared with the clone.
func (i *Instance) Clone() *Instance {
	c := *i
	c.Mem = NewMemory(i.Mem)
	c.input = append([]Cell(nil), i.input...)
	c.output = append([]Cell(nil), i.output...)
	return &c
}

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

package vm_test

import (
	"math"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

func assertEqualI(t *testing.T, name string, expected, got int) {
	t.Helper()
	if expected != got {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

func assertCells(t *testing.T, name string, expected, got []vm.Cell) {
	t.Helper()
	diff := len(expected) != len(got)
	if !diff {
		for i := range expected {
			if expected[i] != got[i] {
				diff = true
				break
			}
		}
	}
	if diff {
		t.Errorf("%s:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

func parse(t *testing.T, text string) C {
	t.Helper()
	prog, err := vm.Parse(text)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return prog
}

func setup(t *testing.T, prog C, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(prog, opts...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func setupAsm(t *testing.T, name, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	prog, err := asm.Assemble(name, strings.NewReader(code))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return setup(t, prog, opts...)
}

var tests = [...]struct {
	name string
	code string
	in   C
	out  C
	pc   int
}{
	{"halt", "halt", nil, nil, 0},
	{"add", "add #2 #3 9 out 9 halt", nil, C{5}, 6},
	{"mul", "mul #-2 #3 9 out 9 halt", nil, C{-6}, 6},
	{"lt", "lt #1 #2 20 out 20 lt #2 #1 20 out 20 lt #2 #2 20 out 20 halt", nil, C{1, 0, 0}, 18},
	{"eq", "eq #1 #2 20 out 20 eq #2 #2 20 out 20 halt", nil, C{0, 1}, 12},
	{"in", "in 9 out 9 halt", C{7}, C{7}, 4},
	{"in order", "in 20 in 21 out 21 out 20 halt", C{1, 2}, C{2, 1}, 8},
	{"jnz taken", "jnz #1 #5 out #1 out #2 halt", nil, C{2}, 7},
	{"jnz not taken", "jnz #0 #5 out #1 out #2 halt", nil, C{1, 2}, 7},
	{"jz taken", "jz #0 #5 out #1 out #2 halt", nil, C{2}, 7},
	{"jz not taken", "jz #3 #5 out #1 out #2 halt", nil, C{1, 2}, 7},
	{"jump position", "jnz #1 target out #1 :target out #2 halt .org 20 :tgt .dat 0 .org 30 .equ X 0 halt", nil, C{2}, 7},
	{"arb", "arb #10 arb #-3 out @0 halt .org 7 .dat 42", nil, C{42}, 6},
	{"relative write", "arb #100 add #1 #2 @5 out 105 halt", nil, C{3}, 8},
	{"position", "out 3 halt .dat 77", nil, C{77}, 2},
	{"read beyond", "out 1000 halt", nil, C{0}, 2},
	{"large", "mul #1125899906842624 #3 20 out 20 halt", nil, C{3377699720527872}, 6},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		i := setupAsm(t, test.name, test.code, vm.Input(test.in...))
		out, sig, err := i.RunAll()
		if err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if sig != vm.Halted {
			t.Errorf("%s: expected signal %v, got %v", test.name, vm.Halted, sig)
		}
		assertCells(t, test.name, test.out, out)
		assertEqualI(t, test.name+" pc", test.pc, i.PC)
	}
}

func TestRun_haltOnly(t *testing.T) {
	i := setup(t, C{99})
	sig, err := i.Run()
	if err != nil {
		t.Fatal(err)
	}
	if sig != vm.Halted || !i.Halted() || i.State() != vm.StateHalted {
		t.Fatalf("expected halt, got signal %v, state %v", sig, i.State())
	}
	assertEqualI(t, "pc", 0, i.PC)
	assertCells(t, "memory", C{99}, i.Mem)

	// running a halted machine is a no-op
	sig, err = i.Run()
	if sig != vm.Halted || err != nil {
		t.Fatalf("Run after halt: got %v, %v", sig, err)
	}
	assertEqualI(t, "instruction count", 1, int(i.InstructionCount()))
}

func TestRun_memory(t *testing.T) {
	for _, test := range [...]struct {
		prog string
		mem  C
	}{
		{"1,0,0,0,99", C{2, 0, 0, 0, 99}},
		{"2,3,0,3,99", C{2, 3, 0, 6, 99}},
		{"2,4,4,5,99,0", C{2, 4, 4, 5, 99, 9801}},
		{"1,1,1,4,99,5,6,0,99", C{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"1002,4,3,4,33", C{1002, 4, 3, 4, 99}},
		{"1101,100,-1,4,0", C{1101, 100, -1, 4, 99}},
	} {
		i := setup(t, parse(t, test.prog))
		if _, _, err := i.RunAll(); err != nil {
			t.Errorf("%s: %+v", test.prog, err)
			continue
		}
		assertCells(t, test.prog, test.mem, i.Mem)
	}
}

func TestRun_echo(t *testing.T) {
	i, err := vm.Load("3,0,4,0,99", 42)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := i.Run()
	if err != nil || sig != vm.ProducedOutput {
		t.Fatalf("expected output, got %v, %v", sig, err)
	}
	if i.State() != vm.StateHaltedOutput {
		t.Errorf("unexpected state %v", i.State())
	}
	assertCells(t, "output", C{42}, i.Output())
	sig, err = i.Run()
	if err != nil || sig != vm.Halted {
		t.Fatalf("expected halt, got %v, %v", sig, err)
	}
	assertCells(t, "drained output", C{42}, i.DrainOutput())
	if len(i.Output()) != 0 {
		t.Errorf("output not drained: %v", i.Output())
	}
}

func TestRun_relativeWrite(t *testing.T) {
	for _, test := range [...]struct {
		base, offset vm.Cell
	}{
		{20, 5},
		{30, -3},
		{0, 7},
	} {
		// arb #base, add #7 #0 @offset, halt
		i := setup(t, C{109, test.base, 21101, 7, 0, test.offset, 99})
		if _, _, err := i.RunAll(); err != nil {
			t.Fatalf("%+v", err)
		}
		v, err := i.Peek(test.base + test.offset)
		if err != nil {
			t.Fatal(err)
		}
		assertEqualI(t, "relative write", 7, int(v))
		assertEqualI(t, "relative base", int(test.base), int(i.RelativeBase()))
	}
}

func TestRun_needsInput(t *testing.T) {
	i := setup(t, C{3, 5, 4, 5, 99})
	for n := 0; n < 3; n++ {
		sig, err := i.Run()
		if err != nil || sig != vm.NeedsInput {
			t.Fatalf("expected NeedsInput, got %v, %v", sig, err)
		}
		assertEqualI(t, "pc", 0, i.PC)
		assertEqualI(t, "instruction count", 0, int(i.InstructionCount()))
		assertCells(t, "memory", C{3, 5, 4, 5, 99}, i.Mem)
		if i.State() != vm.StateAwaitingInput {
			t.Fatalf("unexpected state %v", i.State())
		}
	}
	i.PushInput(9)
	sig, _ := i.Run()
	if sig != vm.ProducedOutput {
		t.Fatalf("expected output, got %v", sig)
	}
	if v, ok := i.PopOutput(); !ok || v != 9 {
		t.Fatalf("expected 9, got %v, %v", v, ok)
	}
	if _, ok := i.PopOutput(); ok {
		t.Fatal("output buffer should be empty")
	}
	if sig, _ = i.Run(); sig != vm.Halted {
		t.Fatalf("expected halt, got %v", sig)
	}
}

// Patches the noun and verb cells before running, then reads the result in
// cell 0.
func TestRun_nounVerb(t *testing.T) {
	i := setup(t, parse(t, "1,9,10,3,2,3,11,0,99,30,40,50"))
	for _, test := range [...]struct {
		noun, verb, result vm.Cell
	}{
		{9, 10, 3500},
		{10, 11, 4500},
		{0, 0, 100},
		{5, 6, 700},
	} {
		i.Reset()
		if err := i.Poke(1, test.noun); err != nil {
			t.Fatal(err)
		}
		if err := i.Poke(2, test.verb); err != nil {
			t.Fatal(err)
		}
		if sig, err := i.Run(); err != nil || sig != vm.Halted {
			t.Fatalf("expected halt, got %v, %+v", sig, err)
		}
		v, _ := i.Peek(0)
		assertEqualI(t, "result", int(test.result), int(v))
	}
}

func TestRun_faults(t *testing.T) {
	for _, test := range [...]struct {
		name string
		prog C
		kind error
		pc   int
		word vm.Cell
	}{
		{"unknown opcode", C{42}, vm.ErrUnknownOpcode, 0, 42},
		{"negative word", C{-1}, vm.ErrUnknownOpcode, 0, -1},
		{"invalid mode", C{301, 0, 0, 0, 99}, vm.ErrInvalidMode, 0, 301},
		{"immediate write", C{11101, 1, 1, 1, 99}, vm.ErrInvalidMode, 0, 11101},
		{"immediate input", C{103, 1, 99}, vm.ErrInvalidMode, 0, 103},
		{"negative read", C{4, -1, 99}, vm.ErrInvalidAddress, 0, 4},
		{"negative relative write", C{109, -5, 21101, 1, 1, 2, 99}, vm.ErrInvalidAddress, 2, 21101},
		{"negative jump", C{1105, 1, -7}, vm.ErrInvalidAddress, -7, 0},
		{"jump past end", C{1105, 1, 100}, vm.ErrUnknownOpcode, 100, 0},
		{"huge write", C{1101, 1, 1, math.MaxInt64, 99}, vm.ErrInvalidAddress, 0, 1101},
		{"huge relative write", C{109, 1, 21101, 1, 1, math.MaxInt64 - 1, 99}, vm.ErrInvalidAddress, 2, 21101},
		{"write above max memory", C{1101, 1, 1, vm.MaxMemory, 99}, vm.ErrInvalidAddress, 0, 1101},
	} {
		i := setup(t, test.prog, vm.Input(1))
		sig, err := i.Run()
		if err == nil {
			t.Errorf("%s: expected error, got signal %v", test.name, sig)
			continue
		}
		if !errors.Is(err, test.kind) || errors.Cause(err) != test.kind {
			t.Errorf("%s: expected %v, got %v", test.name, test.kind, err)
		}
		e, ok := err.(*vm.Error)
		if !ok {
			t.Errorf("%s: unexpected error type %T", test.name, err)
			continue
		}
		assertEqualI(t, test.name+" pc", test.pc, e.PC)
		assertEqualI(t, test.name+" word", int(test.word), int(e.Word))
		if i.State() != vm.StateFaulted {
			t.Errorf("%s: unexpected state %v", test.name, i.State())
		}
		// sticky error
		if _, err2 := i.Run(); err2 != err {
			t.Errorf("%s: expected same error, got %v", test.name, err2)
		}
		if _, err2 := i.Step(); err2 != err || i.Err() != err {
			t.Errorf("%s: expected same error from Step, got %v", test.name, err2)
		}
	}
}

func TestMaxSteps(t *testing.T) {
	i := setup(t, C{1105, 1, 0}, vm.MaxSteps(10))
	for n := 0; n < 2; n++ {
		_, err := i.Run()
		if errors.Cause(err) != vm.ErrStepLimit {
			t.Fatalf("expected step limit, got %v", err)
		}
		assertEqualI(t, "instruction count", 10, int(i.InstructionCount()))
		if i.State() != vm.StateReady {
			t.Fatalf("unexpected state %v", i.State())
		}
	}
}

func TestStep(t *testing.T) {
	i := setup(t, C{1101, 2, 3, 5, 99})
	sig, err := i.Step()
	if err != nil || sig != vm.None {
		t.Fatalf("expected None, got %v, %v", sig, err)
	}
	assertEqualI(t, "pc", 4, i.PC)
	if v, _ := i.Peek(5); v != 5 {
		t.Errorf("expected 5, got %d", v)
	}
	if i.State() != vm.StateReady {
		t.Errorf("unexpected state %v", i.State())
	}
	if sig, _ = i.Step(); sig != vm.Halted {
		t.Fatalf("expected Halted, got %v", sig)
	}
	assertEqualI(t, "pc", 4, i.PC)
	assertEqualI(t, "instruction count", 2, int(i.InstructionCount()))
}

func TestStep_fault(t *testing.T) {
	i := setup(t, C{1101, 1, 1, math.MaxInt64, 99})
	sig, err := i.Step()
	if sig != vm.None || errors.Cause(err) != vm.ErrInvalidAddress {
		t.Fatalf("expected ErrInvalidAddress, got %v, %v", sig, err)
	}
	e, ok := err.(*vm.Error)
	if !ok {
		t.Fatalf("unexpected error type %T", err)
	}
	assertEqualI(t, "pc", 0, e.PC)
	assertEqualI(t, "word", 1101, int(e.Word))
	if i.State() != vm.StateFaulted {
		t.Errorf("unexpected state %v", i.State())
	}
}

func TestTrace(t *testing.T) {
	var ops []string
	trace := func(i *vm.Instance, ins vm.Instruction) {
		ops = append(ops, ins.Op.String())
	}
	i := setupAsm(t, "trace", "in 20 jz 20 #7 out 20 halt", vm.Trace(trace), vm.Input(0))
	if _, _, err := i.RunAll(); err != nil {
		t.Fatal(err)
	}
	if s := strings.Join(ops, " "); s != "in jz halt" {
		t.Errorf("unexpected trace %q", s)
	}
}

func TestClone(t *testing.T) {
	i := setup(t, parse(t, "3,20,3,21,1,20,21,22,4,22,99"), vm.Input(1))
	if sig, _ := i.Run(); sig != vm.NeedsInput {
		t.Fatalf("expected NeedsInput, got %v", sig)
	}
	c := i.Clone()
	i.PushInput(2)
	c.PushInput(40)
	out, _, err := i.RunAll()
	if err != nil {
		t.Fatal(err)
	}
	assertCells(t, "original", C{3}, out)
	out, _, err = c.RunAll()
	if err != nil {
		t.Fatal(err)
	}
	assertCells(t, "clone", C{41}, out)
}

func TestReset(t *testing.T) {
	prog := C{1, 0, 0, 0, 99}
	i := setup(t, prog)
	prog[0] = 2 // must not affect the instance
	i.RunAll()
	assertCells(t, "run", C{2, 0, 0, 0, 99}, i.Mem)
	i.Reset()
	if i.PC != 0 || i.State() != vm.StateReady || i.RelativeBase() != 0 {
		t.Fatalf("bad reset: pc %d, state %v", i.PC, i.State())
	}
	assertCells(t, "reset", C{1, 0, 0, 0, 99}, i.Mem)
}

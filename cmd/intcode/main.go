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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// cellList is a flag.Value accepting comma separated lists of cells. It can
// be specified multiple times.
type cellList []vm.Cell

func (l *cellList) String() string { return "" }
func (l *cellList) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return err
		}
		*l = append(*l, vm.Cell(v))
	}
	return nil
}
func (l *cellList) Get() interface{} { return *l }

type patch struct {
	addr, v vm.Cell
}

// patchList is a flag.Value accepting addr=value memory patches.
type patchList []patch

func (l *patchList) String() string { return "" }
func (l *patchList) Set(s string) error {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return errors.Errorf("%s: expected addr=value", s)
	}
	addr, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return err
	}
	val, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*l = append(*l, patch{vm.Cell(addr), vm.Cell(val)})
	return nil
}
func (l *patchList) Get() interface{} { return *l }

var (
	asciiIO     bool
	noRawIO     bool
	debug       bool
	dump        bool
	trace       bool
	disasm      bool
	outFileName string
	maxSteps    int64
	inputs      cellList
	patches     patchList
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		w, _ := i.Peek(vm.Cell(i.PC))
		fmt.Fprintf(os.Stderr, "PC: %v (%v), RB: %v, State: %v\n", i.PC, w, i.RelativeBase(), i.State())
	}
	os.Exit(1)
}

func traceFunc(w *bufio.Writer) vm.TraceFunc {
	return func(i *vm.Instance, _ vm.Instruction) {
		fmt.Fprintf(w, "% 10d\t", i.PC)
		asm.Disassemble(i.Mem, i.PC, w)
		fmt.Fprintf(w, "\t\trb=%d\n", i.RelativeBase())
	}
}

func numOutput(w *bufio.Writer) vm.OutHandler {
	return func(_ *vm.Instance, v vm.Cell) error {
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		if err == nil && dump {
			err = dumpVM(i, os.Stdout)
		}
		atExit(i, err)
	}()

	var fileName = flag.String("image", "input.txt", "Load program from file `filename`")
	flag.Var(&inputs, "in", "queue `values` (comma separated) as input before running (can be specified multiple times)")
	flag.Var(&patches, "set", "patch memory with `addr=value` before running (can be specified multiple times)")
	flag.BoolVar(&asciiIO, "ascii", false, "ASCII input and output")
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO in ASCII mode")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&dump, "dump", false, "dump registers and memory upon exit")
	flag.BoolVar(&trace, "trace", false, "trace executed instructions to stderr")
	flag.BoolVar(&disasm, "disasm", false, "print a disassembly of the program and exit")
	flag.StringVar(&outFileName, "o", "", "save memory to `filename` once the program has halted")
	flag.Int64Var(&maxSteps, "maxsteps", 0, "abort after executing `n` instructions in total (0 means no limit)")

	flag.Parse()

	prog, err := vm.LoadFile(*fileName)
	if err != nil {
		return
	}

	if disasm {
		err = asm.DisassembleAll(prog, 0, stdout)
		return
	}

	in, tearDown, err := newInput(asciiIO, !noRawIO, stdout)
	if err != nil {
		return
	}
	defer tearDown()

	var opts = []vm.Option{
		vm.Input(inputs...),
		vm.MaxSteps(maxSteps),
		vm.BindInHandler(in),
	}
	if asciiIO {
		opts = append(opts, vm.BindOutHandler(ascii.Writer(stdout)))
	} else {
		opts = append(opts, vm.BindOutHandler(numOutput(stdout)))
	}
	if trace {
		stderr := bufio.NewWriter(os.Stderr)
		defer stderr.Flush()
		opts = append(opts, vm.Trace(traceFunc(stderr)))
	}

	i, err = vm.New(prog, opts...)
	if err != nil {
		return
	}
	for _, p := range patches {
		if err = i.Poke(p.addr, p.v); err != nil {
			return
		}
	}

	sig, err := i.Run()
	if err != nil {
		return
	}
	if sig == vm.NeedsInput {
		err = errors.New("end of input reached while the program awaits input")
		return
	}
	if outFileName != "" {
		err = vm.Save(outFileName, i.Mem)
	}
}

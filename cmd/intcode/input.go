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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

func noop() {}

// newInput returns the input handler for the VM: line based when stdin is
// redirected, raw keystrokes for an ASCII program on a terminal, or line
// editing on a terminal otherwise. The returned function restores the
// terminal state.
func newInput(asciiMode, raw bool, out *bufio.Writer) (vm.InHandler, func(), error) {
	var h vm.InHandler
	switch {
	case !term.IsTerminal(int(os.Stdin.Fd())):
		if asciiMode {
			h = ascii.LineReader(os.Stdin)
		} else {
			h = numReader(bufio.NewReader(os.Stdin))
		}
		return flushFirst(out, h), noop, nil
	case asciiMode && raw:
		restore, err := setRawIO(os.Stdin.Fd())
		if err != nil {
			return nil, nil, err
		}
		return flushFirst(out, keyReader(os.Stdin, out)), restore, nil
	default:
		ln := liner.NewLiner()
		ln.SetCtrlCAborts(true)
		return flushFirst(out, lineEditor(ln, asciiMode)), func() { ln.Close() }, nil
	}
}

// flushFirst flushes pending output before waiting for input so that the
// user gets to see any prompt.
func flushFirst(w *bufio.Writer, h vm.InHandler) vm.InHandler {
	return func(i *vm.Instance) error {
		if err := w.Flush(); err != nil {
			return err
		}
		return h(i)
	}
}

func parseValues(line string) ([]vm.Cell, error) {
	fs := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	vs := make([]vm.Cell, 0, len(fs))
	for _, f := range fs {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input value %q", f)
		}
		vs = append(vs, vm.Cell(v))
	}
	return vs, nil
}

// numReader reads integer values from r, one or more per line. Blank lines
// are skipped. At EOF, no input is pushed.
func numReader(r *bufio.Reader) vm.InHandler {
	return func(i *vm.Instance) error {
		for {
			line, err := r.ReadString('\n')
			vs, perr := parseValues(line)
			if perr != nil {
				return perr
			}
			if len(vs) > 0 {
				i.PushInput(vs...)
				return nil
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// keyReader pushes one keystroke at a time. The terminal is in raw mode, so
// keys are echoed back to out. Ctrl-D ends input and Ctrl-C aborts.
func keyReader(r io.Reader, out *bufio.Writer) vm.InHandler {
	var b [1]byte
	return func(i *vm.Instance) error {
		_, err := r.Read(b[:])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch b[0] {
		case 3:
			return errors.New("interrupted")
		case 4:
			return nil
		}
		out.WriteByte(b[0])
		i.PushInput(vm.Cell(b[0]))
		return out.Flush()
	}
}

// lineEditor reads lines with history and editing. In ASCII mode, each line
// is sent as text, else as integer values; invalid integers are reported and
// the user is prompted again.
func lineEditor(ln *liner.State, asciiMode bool) vm.InHandler {
	prompt := "? "
	if asciiMode {
		prompt = ""
	}
	return func(i *vm.Instance) error {
		for {
			line, err := ln.Prompt(prompt)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if asciiMode {
				ln.AppendHistory(line)
				i.PushInput(ascii.EncodeLine(line)...)
				return nil
			}
			vs, err := parseValues(line)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			if len(vs) > 0 {
				ln.AppendHistory(line)
				i.PushInput(vs...)
				return nil
			}
		}
	}
}

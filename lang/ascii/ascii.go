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

// Package ascii provides utility functions for intcode programs that
// communicate in ASCII: input is fed as lines of text terminated by '\n' and
// output is a stream of characters, possibly mixed with non-ASCII values
// (usually a final answer too large to be a character).
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// IsASCII returns true if v is an ASCII character code.
func IsASCII(v vm.Cell) bool {
	return v >= 0 && v < 128
}

// Encode returns the bytes of s as cells.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, len(s))
	for i := 0; i < len(s); i++ {
		c[i] = vm.Cell(s[i])
	}
	return c
}

// EncodeLine returns the bytes of s followed by a new line.
func EncodeLine(s string) []vm.Cell {
	c := make([]vm.Cell, len(s)+1)
	for i := 0; i < len(s); i++ {
		c[i] = vm.Cell(s[i])
	}
	c[len(s)] = '\n'
	return c
}

// Decode converts ASCII values from out to text. Non-ASCII values are
// returned separately in the order they appear in out.
func Decode(out []vm.Cell) (text string, rest []vm.Cell) {
	b := make([]byte, 0, len(out))
	for _, v := range out {
		if IsASCII(v) {
			b = append(b, byte(v))
		} else {
			rest = append(rest, v)
		}
	}
	return string(b), rest
}

// Writer returns an OutHandler that writes ASCII values to w as characters.
// Non-ASCII values are written in decimal on their own line.
func Writer(w io.Writer) vm.OutHandler {
	var b []byte
	return func(_ *vm.Instance, v vm.Cell) error {
		b = b[:0]
		if IsASCII(v) {
			b = append(b, byte(v))
		} else {
			b = append(b, '\n')
			b = strconv.AppendInt(b, int64(v), 10)
			b = append(b, '\n')
		}
		_, err := w.Write(b)
		return errors.Wrap(err, "ascii output")
	}
}

// LineReader returns an InHandler that reads a line of text from r whenever
// the VM needs input, and queues it, including the terminating new line. A
// last line without a new line is terminated as if it had one.
//
// At end of input, the handler does not queue anything, so that Run returns
// NeedsInput.
func LineReader(r io.Reader) vm.InHandler {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return func(i *vm.Instance) error {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			i.PushInput(EncodeLine(strings.TrimRight(line, "\r\n"))...)
		}
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "ascii input")
		}
		return nil
	}
}

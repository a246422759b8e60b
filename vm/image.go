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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse parses a program from its text representation: comma separated
// decimal integers, e.g. "1,9,10,3,2,3,11,0,99,30,40,50". White space around
// values is ignored.
func Parse(text string) ([]Cell, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("Parse: empty program")
	}
	fields := strings.Split(text, ",")
	prog := make([]Cell, len(fields))
	for n, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Parse: value #%d", n)
		}
		prog[n] = Cell(v)
	}
	return prog, nil
}

// LoadFile loads a program from file fileName.
func LoadFile(fileName string) ([]Cell, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadFile")
	}
	prog, err := Parse(string(b))
	if err != nil {
		return nil, errors.Wrapf(err, "LoadFile %s", fileName)
	}
	return prog, nil
}

// Format writes mem to w as comma separated values.
func Format(w io.Writer, mem []Cell) error {
	bw := bufio.NewWriter(w)
	var b []byte
	for k, v := range mem {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := bw.Write(b); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

// Save saves mem to file fileName, in the same format as accepted by
// LoadFile. The file is removed if an error occurs.
func Save(fileName string, mem []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if err = Format(f, mem); err != nil {
		return errors.Wrap(err, "save failed")
	}
	_, err = f.Write([]byte{'\n'})
	return errors.Wrap(err, "save failed")
}

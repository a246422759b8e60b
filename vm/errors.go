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
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Errors returned by Run and Step wrap one of these and can be
// tested with errors.Is or errors.Cause.
var (
	// ErrInvalidAddress is returned when a memory access resolves to a
	// negative address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidMode is returned for unknown parameter modes, or for an
	// immediate mode write target.
	ErrInvalidMode = errors.New("invalid parameter mode")
	// ErrUnknownOpcode is returned when the instruction word does not
	// decode to a known opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStepLimit is returned by Run when the MaxSteps limit is reached.
	// Unlike the errors above, it does not abort the machine.
	ErrStepLimit = errors.New("step limit reached")
)

// Error is a fatal machine error. It records where the machine was when the
// error occurred. Once a machine has returned an Error, it is Faulted and
// will return the same error from any subsequent call to Run or Step.
type Error struct {
	Err  error // underlying error, wraps one of the Err* kinds or a handler error
	PC   int   // address of the offending instruction
	Word Cell  // instruction word at PC
}

func (e *Error) Error() string {
	return fmt.Sprintf("pc=%d word=%d: %v", e.PC, e.Word, e.Err)
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Format implements fmt.Formatter so that %+v prints the stack trace of the
// underlying error.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "pc=%d word=%d: %+v", e.PC, e.Word, e.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func addressError(addr Cell) error {
	return errors.Wrapf(ErrInvalidAddress, "address %d", addr)
}

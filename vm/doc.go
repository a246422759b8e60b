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

// Package vm implements the intcode virtual machine.
//
// An intcode program is a flat sequence of integers that doubles as the
// initial contents of the machine memory. Memory is logically infinite and
// zero initialized: reading past the end of the loaded program returns 0 and
// writing past it grows the backing slice.
//
// Each instruction word holds the opcode in its two lowest decimal digits,
// followed by one addressing mode digit per parameter (0: position, 1:
// immediate, 2: relative to the relative base). The opcodes are:
//
//	opcode	asm	params	description
//	------	---	------	---------------------------------------------------
//	1	add	a b d	d = a + b
//	2	mul	a b d	d = a * b
//	3	in	d	d = next input value, suspends if no input is queued
//	4	out	a	append a to the output buffer, then suspend
//	5	jnz	a t	jump to t if a != 0
//	6	jz	a t	jump to t if a == 0
//	7	lt	a b d	d = 1 if a < b, else 0
//	8	eq	a b d	d = 1 if a == b, else 0
//	9	arb	a	add a to the relative base
//	99	halt		stop execution
//
// The VM runs as a coroutine: Run executes instructions until the program
// halts, needs input that has not been pushed yet, or has just produced an
// output value. It then returns a Signal telling the caller which of these
// happened. The caller pushes more input, drains output, and calls Run again
// to resume exactly where execution stopped. Several instances can be chained
// this way by moving values from one instance's output to another's input,
// see Feedback.
//
// For programs that are simpler to drive with callbacks, BindInHandler and
// BindOutHandler let the caller feed input on demand and consume output as it
// is produced without returning from Run.
//
// Instances share no state: any number of them can be run side by side, but
// a single Instance is not safe for concurrent use.
package vm

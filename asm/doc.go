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

// Package asm provides utility functions to assemble and disassemble intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Parameters marked with a * are write targets and cannot use immediate mode.
//
//	opcode	asm	params		description
//	------	---	------		-------------------------------------------------
//	1	add	a b *d		d = a + b
//	2	mul	a b *d		d = a * b
//	3	in	*d		read the next input value into d
//	4	out	a		output a
//	5	jnz	a t		jump to t if a != 0
//	6	jz	a t		jump to t if a == 0
//	7	lt	a b *d		d = 1 if a < b, else 0
//	8	eq	a b *d		d = 1 if a == b, else 0
//	9	arb	a		add a to the relative base
//	99	halt			stop
//
// Parameters:
//
// Each mnemonic must be followed by exactly the number of parameters listed
// above. The addressing mode of a parameter is selected with a prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	@-1	relative mode: the value at address relative base - 1
//
// The parameter value itself can be an integer literal in any base accepted
// by strconv.ParseInt, a Go character literal between single quotes ('a',
// '\n'), a named constant or a label. A label used as a position mode
// parameter designates the memory cell at the label address, while #label is
// the address itself:
//
//	add x #1 x	( increment the cell at x )
//	jnz #1 #loop	( unconditional jump to loop )
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and must start with a
// letter or an underscore. Forward references are ok:
//
//	:loop	in x
//		out x
//		jnz #1 #loop
//	:x	.dat 0
//
// Raw values:
//
// Where the parser is expecting an instruction, integer literals, character
// literals and constants are compiled as-is. This is handy for hand-written
// test programs:
//
//	1 0 0 0 99	( same as "add 0 0 0 halt" )
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named
// constant or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value>
//
// Will compile the specified integer value, named constant, character literal
// or label address as-is. This is primarily used for data storage:
//
//	:table	.dat 65
//		.dat 'B'
//		.dat table
package asm

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

// The intcode command line tool runs intcode programs, wiring the program's
// input and output to the terminal.
//
// Usage:
//
//	-ascii
//		  ASCII input and output
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  print a disassembly of the program and exit
//	-dump
//		  dump registers and memory upon exit
//	-image filename
//		  Load program from file filename (default "input.txt")
//	-in values
//		  queue values (comma separated) as input before running (can be specified multiple times)
//	-maxsteps n
//		  abort after executing n instructions in total (0 means no limit)
//	-noraw
//		  disable raw terminal IO in ASCII mode
//	-o filename
//		  save memory to filename once the program has halted
//	-set addr=value
//		  patch memory with addr=value before running (can be specified multiple times)
//	-trace
//		  trace executed instructions to stderr
//
// Input values queued with -in are consumed first. Once they are exhausted,
// input is read from stdin on demand: integers, one or more per line
// (separated by commas or spaces), or lines of text with -ascii where each
// line is sent as its ASCII codes followed by a newline.
//
// When stdin is a terminal, lines are read with line editing and history.
// With -ascii, the terminal is instead switched to raw mode and every keystroke
// is sent to the program as soon as it is typed, unless -noraw is given.
// Ctrl-D ends input. A program still waiting for input once input has ended
// is reported as an error.
//
// Outputs are printed one per line, or as text with -ascii. Non-ASCII values
// output in ASCII mode are printed in decimal on a line of their own.
//
// -set: patches are applied after the program is loaded and before it runs.
// For example, restoring the "1202 program alarm" state:
//
//	intcode -set 1=12 -set 2=2 -dump
//
// -dump: prints the program counter, relative base, machine state and
// instruction count, followed by the full memory, comma separated.
//
// -trace: every instruction is disassembled to stderr before it executes,
// together with the current relative base.
//
// -debug: print a full stacktrace along with the machine registers should the
// program crash.
//
// The command exits with status 1 on any error.
package main

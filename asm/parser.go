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

package asm

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

func isLabelName(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r) || r == '_'
}

// mode digit multipliers for parameters 1 to 3
var modeFactor = [vm.MaxParams]vm.Cell{100, 1000, 10000}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i      []vm.Cell
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	errs   ErrAsm
	op     vm.Opcode // current instruction
	opPC   int       // address of the current instruction
	arg    int       // index of the next expected parameter, -1 if none
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	p.arg = -1
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

// number converts s to an integer. It handles integer literals, character
// literals and named constants.
func (p *parser) number(pos scanner.Position, s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(pos, "invalid character literal "+s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

func (p *parser) useLabel(pos scanner.Position, name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

// value compiles an integer value or a label reference at the current address.
func (p *parser) value(pos scanner.Position, s string) {
	switch {
	case s == "":
		p.error(pos, "missing value")
	case isLabelName(s):
		if v, ok := p.number(pos, s); ok {
			p.write(v)
			return
		}
		p.useLabel(pos, s)
	default:
		if v, ok := p.number(pos, s); ok {
			p.write(v)
			return
		}
		p.error(pos, "invalid value "+s)
	}
	p.write(0)
}

func (p *parser) defineLabel(pos scanner.Position, name string) {
	if !isLabelName(name) {
		p.error(pos, "invalid label name: "+strconv.Quote(name))
		return
	}
	if cst, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition: "+name+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// next scans the next token for a directive argument.
func (p *parser) next(directive string) (scanner.Position, string, bool) {
	tok := p.s.Scan()
	if tok != scanner.Ident {
		p.error(p.s.Position, directive+": missing argument")
		return p.s.Position, "", false
	}
	return p.s.Position, p.s.TokenText(), true
}

func (p *parser) directive(pos scanner.Position, s string) {
	switch s {
	case ".org":
		apos, arg, ok := p.next(s)
		if !ok {
			return
		}
		v, ok := p.number(apos, arg)
		if !ok || v < 0 {
			p.error(apos, ".org: invalid address "+arg)
			return
		}
		p.pc = int(v)
	case ".dat":
		apos, arg, ok := p.next(s)
		if ok {
			p.value(apos, arg)
		}
	case ".equ":
		npos, name, ok := p.next(s)
		if !ok {
			return
		}
		if !isLabelName(name) {
			p.error(npos, ".equ: invalid constant name "+strconv.Quote(name))
			return
		}
		if l, ok := p.labels[name]; ok {
			p.error(npos, ".equ: redefinition of "+name+", previously defined/used as a label here: "+l.pos.String())
			return
		}
		if c, ok := p.consts[name]; ok {
			p.error(npos, ".equ: redefinition of "+name+", previous definition here: "+c.pos.String())
			return
		}
		vpos, arg, ok := p.next(s)
		if !ok {
			return
		}
		v, ok := p.number(vpos, arg)
		if !ok {
			p.error(vpos, ".equ: invalid value "+arg)
			return
		}
		p.consts[name] = labelSite{npos, int(v)}
	default:
		p.error(pos, "unknown directive: "+s)
	}
}

func (p *parser) instruction(pos scanner.Position, s string) {
	if v, ok := p.number(pos, s); ok {
		// raw data
		p.write(v)
		return
	}
	op, ok := vm.LookupOpcode(s)
	if !ok {
		p.error(pos, "unknown instruction: "+s)
		return
	}
	p.op, p.opPC = op, p.pc
	p.write(vm.Cell(op))
	if op.Params() > 0 {
		p.arg = 0
	}
}

func (p *parser) operand(pos scanner.Position, s string) {
	n := p.arg
	if p.arg++; p.arg >= p.op.Params() {
		p.arg = -1
	}
	mode := vm.ModePosition
	switch s[0] {
	case '#':
		mode, s = vm.ModeImmediate, s[1:]
	case '@':
		mode, s = vm.ModeRelative, s[1:]
	case ':', '.':
		p.error(pos, fmt.Sprintf("%s: unexpected %s as parameter %d", p.op, s, n+1))
		p.write(0)
		return
	}
	if mode == vm.ModeImmediate && n == p.op.Dst() {
		p.error(pos, fmt.Sprintf("%s: immediate mode for write parameter %d", p.op, n+1))
	}
	p.i[p.opPC] += vm.Cell(mode) * modeFactor[n]
	p.value(pos, s)
}

func (p *parser) skipComment() {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return
		}
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		pos := p.s.Position
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.error(pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		switch {
		case s == "(":
			p.skipComment()
		case p.arg >= 0:
			p.operand(pos, s)
		case s[0] == ':':
			p.defineLabel(pos, s[1:])
		case s[0] == '.':
			p.directive(pos, s)
		default:
			p.instruction(pos, s)
		}
	}
	if p.arg >= 0 {
		p.error(p.s.Pos(), fmt.Sprintf("%s: missing parameter %d", p.op, p.arg+1))
	}

	// write labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i[:p.end], nil
}

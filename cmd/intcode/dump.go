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
	"fmt"
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// dumpVM dumps the machine registers and memory to the specified io.Writer.
func dumpVM(i *vm.Instance, w io.Writer) error {
	if i == nil {
		return nil
	}
	ew := ici.NewErrWriter(w)
	fmt.Fprintf(ew, "\x1Cpc=%d rb=%d state=%v steps=%d\x1D", i.PC, i.RelativeBase(), i.State(), i.InstructionCount())
	if err := vm.Format(ew, i.Mem); err != nil {
		return err
	}
	ew.WriteByte('\n')
	return ew.Err
}

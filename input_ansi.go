// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// ansiKeyReader decodes arrow keys from a raw terminal byte stream (ESC [ A..D).
type ansiKeyReader struct {
	In    io.Reader
	Input *DirectionQueue
	Quit  func()
}

// Run blocks until In is closed or fails. It never returns io.EOF.
func (k *ansiKeyReader) Run() error {
	r := bufio.NewReader(k.In)
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch b {
		case keyCtrlC, 'q':
			log.Debugln("key reader: quit requested")
			if k.Quit != nil {
				k.Quit()
			}
		case keyEscape:
			d, err := readArrow(r)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if d != "" && k.Input != nil {
				k.Input.Push(d)
			}
		}
	}
}

// readArrow reads the rest of an escape sequence. Unknown sequences return an empty direction.
func readArrow(r *bufio.Reader) (Direction, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	if b != '[' && b != 'O' {
		return "", nil
	}
	b, err = r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b {
	case 'A':
		return DirectionUp, nil
	case 'B':
		return DirectionDown, nil
	case 'C':
		return DirectionRight, nil
	case 'D':
		return DirectionLeft, nil
	}
	return "", nil
}

// makeRaw switches f into raw mode if it is a terminal.
// The returned function restores the previous state and is never nil.
func makeRaw(f *os.File) (func() error, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() error { return nil }, err
	}
	return func() error { return term.Restore(fd, old) }, nil
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

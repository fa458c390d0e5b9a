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
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	ansiClear      = "\033[2J"
	ansiHideCursor = "\033[?25l"
	ansiShowCursor = "\033[?25h"
)

// cmdUI draws the game with plain ANSI escape sequences.
// If Keys is set, its input is switched to raw mode and read in the background.
type cmdUI struct {
	Out  io.Writer
	Keys *ansiKeyReader

	w       *bufio.Writer
	restore func() error
}

func (c *cmdUI) Initialise() error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	c.w = bufio.NewWriter(c.Out)
	c.restore = func() error { return nil }

	if c.Keys != nil {
		if f, ok := c.Keys.In.(*os.File); ok {
			restore, err := makeRaw(f)
			if err != nil {
				return fmt.Errorf("switching to raw mode: %w", err)
			}
			c.restore = restore
		}
		go func() {
			err := c.Keys.Run()
			if err != nil {
				log.WithError(err).Errorln("key reader stopped")
			}
		}()
	}
	return nil
}

func (c *cmdUI) Draw(s Snapshot) error {
	if c.w == nil {
		return fmt.Errorf("cmd ui not initialised")
	}
	c.w.WriteString(ansiClear)
	c.w.WriteString(ansiHideCursor)

	lines := boardLines(s)
	for y, line := range lines {
		goTo(c.w, 0, y)
		c.w.WriteString(line)
	}

	for i, line := range buildGameOverviewStrings(s) {
		goTo(c.w, boardWidth+2, i+GridYOffset)
		c.w.WriteString(line)
	}
	goTo(c.w, 0, len(lines))

	return c.w.Flush()
}

func (c *cmdUI) Finish(s Snapshot) error {
	if c.w == nil {
		return nil
	}
	c.w.WriteString(ansiShowCursor)
	err := c.w.Flush()
	newErr := c.restore()
	if err != nil {
		return err
	}
	return newErr
}

func (c *cmdUI) Wait() {
}

// goTo moves the cursor to the 0-based cell (x, y).
func goTo(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y+1, x+1)
}

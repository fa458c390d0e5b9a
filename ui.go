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
	"fmt"
	"strings"
)

const (
	// GridXOffset is the column of the first grid cell relative to the left border.
	GridXOffset = 1
	// GridYOffset is the row of the first grid cell relative to the score line.
	GridYOffset = 2

	glyphSnake  = 'X'
	glyphApple  = 'O'
	glyphBorder = '*'
	glyphEmpty  = ' '
)

// The UI interface allows the usage of different UIs.
//
// Draw is called at least once per tick from the game loop. Errors returned by Draw or Finish are fatal.
type UI interface {
	Initialise() error
	Draw(s Snapshot) error
	Finish(s Snapshot) error
	Wait()
}

type quietUI struct{}

func (q quietUI) Initialise() error {
	return nil
}

func (q quietUI) Draw(s Snapshot) error {
	return nil
}

func (q quietUI) Finish(s Snapshot) error {
	return nil
}

func (q quietUI) Wait() {
}

// boardWidth is the width of the board including borders.
const boardWidth = GridSize + 2*GridXOffset

// boardLines returns the textual board: score line, top border, one line per grid row and the bottom border.
func boardLines(s Snapshot) []string {
	cells := make([][]rune, GridSize)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(glyphEmpty), GridSize))
	}
	for _, p := range s.Snake {
		if onGrid(p) {
			cells[p.Y][p.X] = glyphSnake
		}
	}
	if onGrid(s.Apple) {
		cells[s.Apple.Y][s.Apple.X] = glyphApple
	}

	border := strings.Repeat(string(glyphBorder), boardWidth)
	lines := make([]string, 0, GridSize+3)
	lines = append(lines, fmt.Sprintf("Score: %d", s.Score))
	lines = append(lines, border)
	for y := range cells {
		var sb strings.Builder
		sb.WriteRune(glyphBorder)
		sb.WriteString(string(cells[y]))
		sb.WriteRune(glyphBorder)
		lines = append(lines, sb.String())
	}
	lines = append(lines, border)
	return lines
}

// screenPosition maps a grid coordinate to a 0-based terminal cell.
func screenPosition(p Point) (x, y int) {
	return p.X + GridXOffset, p.Y + GridYOffset
}

func onGrid(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < GridSize && p.Y < GridSize
}

func buildGameOverviewStrings(s Snapshot) []string {
	ss := make([]string, 0, 8)
	id := s.ID
	if len(id) > 8 {
		id = id[:8]
	}
	ss = append(ss, fmt.Sprintf("game %s", id))
	ss = append(ss, fmt.Sprintf("tick: %d", s.Tick))
	ss = append(ss, fmt.Sprintf("length: %d", len(s.Snake)))
	ss = append(ss, fmt.Sprintf("direction: %s", s.Direction))
	ss = append(ss, fmt.Sprintf("apple: %s", s.Apple))
	if s.State == StateOver {
		ss = append(ss, "")
		ss = append(ss, fmt.Sprintf("game over (%s)", s.Reason))
	}
	return ss
}

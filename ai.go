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
	"sort"
)

var allDirections = []Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

// The AI interface provides the interface for different autopilots.
//
// Decide must not block and must not modify the snapshot.
type AI interface {
	Decide(s Snapshot) Direction
	Name() string
}

// GetAI returns the autopilot with the given name.
// "any" returns a random one out of the current rotation.
func GetAI(name string, rng Rand) (AI, error) {
	var AIArray = []func() AI{
		func() AI { return new(GreedyAI) },
		func() AI { return new(GreedyAI) },
		func() AI { return &RandomAI{rng: rng} },
	}
	switch name {
	case "any":
		return AIArray[rng.Intn(len(AIArray))](), nil
	case "greedy":
		return new(GreedyAI), nil
	case "random":
		return &RandomAI{rng: rng}, nil
	}
	return nil, fmt.Errorf("unknown ai %q", name)
}

// board is a grid occupancy map built from a snapshot.
type board struct {
	cells             [GridSize][GridSize]bool
	freeCountingSlice []bool
}

// newBoard marks all segments except the tail, which moves away during the next step.
func newBoard(s Snapshot) *board {
	b := new(board)
	for i, p := range s.Snake {
		if i == 0 && len(s.Snake) > 1 {
			continue
		}
		if onGrid(p) {
			b.cells[p.Y][p.X] = true
		}
	}
	return b
}

func (b *board) free(p Point) bool {
	return onGrid(p) && !b.cells[p.Y][p.X]
}

// candidates returns the directions which do not end the game in the next step.
func candidates(s Snapshot, b *board) []Direction {
	head := s.Head()
	c := make([]Direction, 0, 3)
	for _, d := range allDirections {
		if d == s.Direction.Opposite() {
			continue
		}
		next, ok := d.step(head)
		if !ok || !b.free(next) {
			continue
		}
		c = append(c, d)
	}
	return c
}

// freeSpaceConnected counts the free cells reachable from p (including p), stopping early once cutoff is exceeded.
// cutoff -1 == no cutoff
func (b *board) freeSpaceConnected(p Point, cutoff int) int {
	if b.freeCountingSlice == nil {
		b.freeCountingSlice = make([]bool, GridSize*GridSize)
	} else {
		for i := range b.freeCountingSlice {
			b.freeCountingSlice[i] = false
		}
	}
	return b.freeSpaceConnectedInternal(p.X, p.Y, cutoff, 0)
}

func (b *board) freeSpaceConnectedInternal(x, y, cutoff, current int) int {
	if cutoff != -1 && current > cutoff {
		return current
	}

	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return current
	}

	cell := y*GridSize + x

	if b.freeCountingSlice[cell] {
		return current
	}
	b.freeCountingSlice[cell] = true

	if b.cells[y][x] {
		return current
	}
	current++

	current = b.freeSpaceConnectedInternal(x-1, y, cutoff, current)
	current = b.freeSpaceConnectedInternal(x+1, y, cutoff, current)
	current = b.freeSpaceConnectedInternal(x, y-1, cutoff, current)
	current = b.freeSpaceConnectedInternal(x, y+1, cutoff, current)

	return current
}

func distance(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// GreedyAI moves towards the apple but avoids moves into areas smaller than the snake.
type GreedyAI struct{}

// Decide implements the AI interface.
func (g *GreedyAI) Decide(s Snapshot) Direction {
	b := newBoard(s)
	c := candidates(s, b)
	if len(c) == 0 {
		return s.Direction
	}

	type option struct {
		d     Direction
		dist  int
		space bool
	}
	options := make([]option, 0, len(c))
	for _, d := range c {
		next, _ := d.step(s.Head())
		options = append(options, option{
			d:     d,
			dist:  distance(next, s.Apple),
			space: b.freeSpaceConnected(next, len(s.Snake)) > len(s.Snake),
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].space != options[j].space {
			return options[i].space
		}
		if options[i].dist != options[j].dist {
			return options[i].dist < options[j].dist
		}
		return options[i].d == s.Direction && options[j].d != s.Direction
	})
	return options[0].d
}

// Name implements the AI interface.
func (g *GreedyAI) Name() string {
	return "GreedyAI"
}

// RandomAI chooses a random direction which does not end the game in the next step.
type RandomAI struct {
	rng Rand
}

// Decide implements the AI interface.
func (r *RandomAI) Decide(s Snapshot) Direction {
	c := candidates(s, newBoard(s))
	if len(c) == 0 {
		return s.Direction
	}
	return c[r.rng.Intn(len(c))]
}

// Name implements the AI interface.
func (r *RandomAI) Name() string {
	return "RandomAI"
}

// autopilotUI asks AI for a direction on every draw of a running game and pushes it into Input.
type autopilotUI struct {
	AI    AI
	Input *DirectionQueue
	UI    UI
}

func (a *autopilotUI) Initialise() error {
	if a.UI != nil {
		return a.UI.Initialise()
	}
	return nil
}

func (a *autopilotUI) Draw(s Snapshot) error {
	if s.State == StateStarted && a.AI != nil && a.Input != nil {
		a.Input.Push(a.AI.Decide(s))
	}
	if a.UI != nil {
		return a.UI.Draw(s)
	}
	return nil
}

func (a *autopilotUI) Finish(s Snapshot) error {
	if a.UI != nil {
		return a.UI.Finish(s)
	}
	return nil
}

func (a *autopilotUI) Wait() {
	if a.UI != nil {
		a.UI.Wait()
	}
}

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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

const (
	// GridSize contains the size of the field (both width and height).
	GridSize = 16
	// TickInterval holds the time between two steps of the game.
	TickInterval = 250 * time.Millisecond

	// maxAppleAttempts is the number of random draws before falling back to a scan of the free cells.
	maxAppleAttempts = 4 * GridSize * GridSize
)

// GameState is the state of a game.
type GameState string

const (
	// StateStarted marks a running game.
	StateStarted GameState = "started"
	// StateOver marks a finished game. It is terminal.
	StateOver GameState = "over"
)

// OverReason describes why a game ended.
type OverReason string

// Reasons for the end of a game.
const (
	ReasonNone     OverReason = ""
	ReasonBoundary OverReason = "boundary"
	ReasonWall     OverReason = "wall"
	ReasonSelf     OverReason = "self"
	ReasonFull     OverReason = "full"
	ReasonQuit     OverReason = "quit"
)

// Rand is the source of randomness used for placing apples.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded random source. A seed of 0 uses the current time.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Game represents a single game of snake.
type Game struct {
	ID string

	score  int
	state  GameState
	reason OverReason
	snake  *Snake
	apple  Point
	tick   int

	rng      Rand
	interval time.Duration
}

// Snapshot is a read-only copy of a game used by the UIs.
type Snapshot struct {
	ID        string     `json:"id"`
	Tick      int        `json:"tick"`
	Score     int        `json:"score"`
	State     GameState  `json:"state"`
	Reason    OverReason `json:"reason,omitempty"`
	Direction Direction  `json:"direction"`
	Snake     []Point    `json:"snake"`
	Apple     Point      `json:"apple"`
}

// Head returns the head of the snake in the snapshot.
func (s Snapshot) Head() Point {
	if len(s.Snake) == 0 {
		return Point{}
	}
	return s.Snake[len(s.Snake)-1]
}

// NewGame returns a new game. If rng is nil, a time-seeded source is used.
func NewGame(rng Rand) *Game {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Game{
		ID:       uuid.New().String(),
		state:    StateStarted,
		snake:    NewSnake(),
		apple:    NewPoint(7, 8),
		rng:      rng,
		interval: TickInterval,
	}
}

// Score returns the number of apples eaten.
func (g *Game) Score() int {
	return g.score
}

// State returns the current state.
func (g *Game) State() GameState {
	return g.state
}

// Reason returns why the game ended. It is ReasonNone while the game is running.
func (g *Game) Reason() OverReason {
	return g.reason
}

// Apple returns the position of the apple.
func (g *Game) Apple() Point {
	return g.apple
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.state == StateOver
}

func (g *Game) logger() *log.Entry {
	return log.WithField("game", g.ID)
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:        g.ID,
		Tick:      g.tick,
		Score:     g.score,
		State:     g.state,
		Reason:    g.reason,
		Direction: g.snake.Direction(),
		Snake:     g.snake.Body(),
		Apple:     g.apple,
	}
}

// Run plays the game until it is over or ctx is cancelled.
// The returned error is non-nil only if the UI failed.
func (g *Game) Run(ctx context.Context, ui UI, in InputSource) error {
	g.logger().Infoln("game started")

	for !g.Over() {
		err := ui.Draw(g.Snapshot())
		if err != nil {
			return fmt.Errorf("drawing tick %d: %w", g.tick, err)
		}

		if g.Step(in) {
			break
		}

		err = ui.Draw(g.Snapshot())
		if err != nil {
			return fmt.Errorf("drawing tick %d: %w", g.tick, err)
		}

		t := time.NewTimer(g.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			g.end(ReasonQuit)
		case <-t.C:
		}
	}

	g.logger().WithFields(log.Fields{"score": g.score, "reason": g.reason, "ticks": g.tick}).Infoln("game over")
	return nil
}

// Step processes the input and moves the snake once.
// It returns true if the game is over afterwards.
func (g *Game) Step(in InputSource) bool {
	if g.Over() {
		return true
	}
	g.tick++

	if d, ok := drainLatest(in); ok {
		g.snake.ChangeDirection(d)
	}

	head, err := g.snake.Advance()
	if err != nil {
		if errors.Is(err, ErrOutOfBounds) {
			g.end(ReasonBoundary)
			return true
		}
		panic(fmt.Errorf("advancing snake: %w", err))
	}

	if head == g.apple {
		tail, err := g.snake.Tail()
		if err != nil {
			panic(fmt.Errorf("growing snake: %w", err))
		}

		g.score++
		g.snake.Grow(growthSegment(tail, g.snake.Direction()))

		apple, ok := g.newApple()
		if !ok {
			g.end(ReasonFull)
			return true
		}
		g.apple = apple
		g.logger().WithFields(log.Fields{"score": g.score, "apple": apple}).Debugln("apple eaten")
		return false
	}

	switch {
	case head.X == GridSize || head.Y == GridSize:
		g.end(ReasonWall)
		return true
	case g.snake.AteItself():
		g.end(ReasonSelf)
		return true
	}
	return false
}

func (g *Game) end(r OverReason) {
	g.state = StateOver
	g.reason = r
}

// growthSegment returns the segment placed behind tail when the snake grows.
// It is one unit opposite to the direction of travel, not along the tail's own orientation.
func growthSegment(tail Point, d Direction) Point {
	switch d {
	case DirectionUp:
		return Point{tail.X, tail.Y + 1}
	case DirectionDown:
		return Point{tail.X, tail.Y - 1}
	case DirectionLeft:
		return Point{tail.X + 1, tail.Y}
	case DirectionRight:
		return Point{tail.X - 1, tail.Y}
	}
	return tail
}

// newApple returns a random free cell. ok is false if the snake covers the whole grid.
func (g *Game) newApple() (p Point, ok bool) {
	for i := 0; i < maxAppleAttempts; i++ {
		p = Point{g.rng.Intn(GridSize), g.rng.Intn(GridSize)}
		if !g.snake.Contains(p) {
			return p, true
		}
	}

	free := make([]Point, 0, GridSize*GridSize)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if !g.snake.Contains(Point{x, y}) {
				free = append(free, Point{x, y})
			}
		}
	}
	if len(free) == 0 {
		return Point{}, false
	}
	return free[g.rng.Intn(len(free))], true
}

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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRand returns the stored values in order, wrapping around.
type sequenceRand struct {
	values []int
	i      int
}

func (r *sequenceRand) Intn(n int) int {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v % n
}

// recordingUI stores every drawn snapshot.
type recordingUI struct {
	draws    []Snapshot
	finished *Snapshot
	err      error
}

func (r *recordingUI) Initialise() error {
	return nil
}

func (r *recordingUI) Draw(s Snapshot) error {
	r.draws = append(r.draws, s)
	return r.err
}

func (r *recordingUI) Finish(s Snapshot) error {
	r.finished = &s
	return nil
}

func (r *recordingUI) Wait() {
}

func newTestGame(rng Rand, s *Snake, apple Point) *Game {
	g := NewGame(rng)
	if s != nil {
		g.snake = s
	}
	g.apple = apple
	g.interval = 0
	return g
}

func TestNewGame(t *testing.T) {
	g := NewGame(nil)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, StateStarted, g.State())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, Point{7, 8}, g.Apple())
	assert.Equal(t, []Point{{0, 8}, {1, 8}}, g.Snapshot().Snake)
	assert.NotEqual(t, g.ID, NewGame(nil).ID)
}

func TestStepMovesSnake(t *testing.T) {
	g := newTestGame(&sequenceRand{values: []int{0}}, nil, Point{7, 8})
	assert.False(t, g.Step(nil))
	assert.Equal(t, []Point{{1, 8}, {2, 8}}, g.Snapshot().Snake)
	assert.Equal(t, 1, g.Snapshot().Tick)
}

func TestStepBoundary(t *testing.T) {
	g := newTestGame(&sequenceRand{values: []int{0}}, newSnakeWithBody(DirectionLeft, Point{1, 3}, Point{0, 3}), Point{7, 8})
	assert.True(t, g.Step(nil))
	assert.Equal(t, StateOver, g.State())
	assert.Equal(t, ReasonBoundary, g.Reason())

	// Over is terminal
	assert.True(t, g.Step(nil))
	assert.Equal(t, 1, g.Snapshot().Tick)
}

func TestStepWall(t *testing.T) {
	tests := []struct {
		name  string
		snake *Snake
	}{
		{"right", newSnakeWithBody(DirectionRight, Point{14, 3}, Point{15, 3})},
		{"down", newSnakeWithBody(DirectionDown, Point{3, 14}, Point{3, 15})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(&sequenceRand{values: []int{0}}, tt.snake, Point{7, 8})
			assert.True(t, g.Step(nil))
			assert.Equal(t, StateOver, g.State())
			assert.Equal(t, ReasonWall, g.Reason())
		})
	}
}

func TestStepAppleEaten(t *testing.T) {
	// First draw (1,8) hits the snake, second draw (5,5) is free
	rng := &sequenceRand{values: []int{1, 8, 5, 5}}
	g := newTestGame(rng, nil, Point{2, 8})

	assert.False(t, g.Step(nil))
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, Point{5, 5}, g.Apple())
	assert.Equal(t, []Point{{0, 8}, {1, 8}, {2, 8}}, g.Snapshot().Snake)
	assert.False(t, g.snake.Contains(g.Apple()))
}

func TestStepAppleEatenAfterTurn(t *testing.T) {
	// The new segment is placed opposite to the direction of travel, not along the tail.
	// With a U-shaped body this puts it on top of an existing segment.
	s := newSnakeWithBody(DirectionLeft, Point{3, 6}, Point{4, 6}, Point{5, 6}, Point{5, 5}, Point{4, 5})
	g := newTestGame(&sequenceRand{values: []int{0}}, s, Point{3, 5})

	assert.False(t, g.Step(nil))
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, []Point{{5, 6}, {4, 6}, {5, 6}, {5, 5}, {4, 5}, {3, 5}}, g.Snapshot().Snake)
	assert.Equal(t, Point{0, 0}, g.Apple())
}

func TestStepSelfCollision(t *testing.T) {
	s := newSnakeWithBody(DirectionUp, Point{6, 5}, Point{5, 5}, Point{4, 5}, Point{4, 6}, Point{5, 6})
	g := newTestGame(&sequenceRand{values: []int{0}}, s, Point{7, 8})

	assert.True(t, g.Step(nil))
	assert.True(t, g.snake.AteItself())
	assert.Equal(t, ReasonSelf, g.Reason())
}

func TestStepInputLastWins(t *testing.T) {
	q := NewDirectionQueue()
	q.Push(DirectionDown)
	q.Push(DirectionUp)
	g := newTestGame(&sequenceRand{values: []int{0}}, nil, Point{7, 8})

	assert.False(t, g.Step(q))
	assert.Equal(t, DirectionUp, g.snake.Direction())
	assert.Equal(t, Point{1, 7}, g.Snapshot().Head())
	_, ok := q.Poll()
	assert.False(t, ok)
}

func TestStepInputReverseIgnored(t *testing.T) {
	q := NewDirectionQueue()
	q.Push(DirectionLeft)
	g := newTestGame(&sequenceRand{values: []int{0}}, nil, Point{7, 8})

	assert.False(t, g.Step(q))
	assert.Equal(t, Point{2, 8}, g.Snapshot().Head())
}

func TestNewAppleNeverOnSnake(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		body := make([]Point, 0, GridSize*GridSize/2)
		for y := 0; y < GridSize/2; y++ {
			for x := 0; x < GridSize; x++ {
				body = append(body, Point{x, y})
			}
		}
		g := newTestGame(NewRand(seed), newSnakeWithBody(DirectionRight, body...), Point{})
		for i := 0; i < 20; i++ {
			p, ok := g.newApple()
			require.True(t, ok)
			assert.True(t, onGrid(p))
			assert.False(t, g.snake.Contains(p), "seed %d: apple %s on snake", seed, p)
		}
	}
}

func TestNewAppleFallback(t *testing.T) {
	// The random source only ever returns (0,0), which is occupied.
	g := newTestGame(&sequenceRand{values: []int{0}}, newSnakeWithBody(DirectionRight, Point{0, 0}), Point{})
	p, ok := g.newApple()
	require.True(t, ok)
	assert.Equal(t, Point{1, 0}, p)
}

func TestNewAppleFullGrid(t *testing.T) {
	body := make([]Point, 0, GridSize*GridSize)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			body = append(body, Point{x, y})
		}
	}
	g := newTestGame(NewRand(1), newSnakeWithBody(DirectionRight, body...), Point{})
	_, ok := g.newApple()
	assert.False(t, ok)
}

func TestRun(t *testing.T) {
	// Apple at (7,8) is eaten, the next one is placed at (0,0) out of the way.
	g := newTestGame(&sequenceRand{values: []int{0}}, nil, Point{7, 8})
	ui := new(recordingUI)

	err := g.Run(context.Background(), ui, NewDirectionQueue())
	require.NoError(t, err)

	assert.Equal(t, StateOver, g.State())
	assert.Equal(t, ReasonWall, g.Reason())
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, 15, g.Snapshot().Tick)
	// Two draws per tick, the last tick ends before the second draw
	assert.Len(t, ui.draws, 2*15-1)
	assert.Equal(t, StateStarted, ui.draws[len(ui.draws)-1].State)
}

func TestRunCancelled(t *testing.T) {
	g := newTestGame(&sequenceRand{values: []int{0}}, nil, Point{7, 8})
	g.interval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Run(ctx, new(recordingUI), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonQuit, g.Reason())
	assert.Equal(t, 1, g.Snapshot().Tick)
}

func TestRunDrawError(t *testing.T) {
	drawErr := errors.New("broken terminal")
	g := newTestGame(&sequenceRand{values: []int{0}}, nil, Point{7, 8})

	err := g.Run(context.Background(), &recordingUI{err: drawErr}, nil)
	assert.ErrorIs(t, err, drawErr)
	assert.Equal(t, StateStarted, g.State())
}

func TestStepEmptyBodyPanics(t *testing.T) {
	g := newTestGame(&sequenceRand{values: []int{0}}, newSnakeWithBody(DirectionRight), Point{7, 8})
	assert.Panics(t, func() { g.Step(nil) })
}

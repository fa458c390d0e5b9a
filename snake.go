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
	"errors"
)

// Direction is the direction of travel of the snake.
type Direction string

const (
	// DirectionUp contains the value representing "up"
	DirectionUp Direction = "up"
	// DirectionDown contains the value representing "down"
	DirectionDown Direction = "down"
	// DirectionLeft contains the value representing "left"
	DirectionLeft Direction = "left"
	// DirectionRight contains the value representing "right"
	DirectionRight Direction = "right"
)

var (
	// ErrOutOfBounds is returned by Snake.Advance if the new head would have a negative coordinate.
	ErrOutOfBounds = errors.New("snake will go out of bounds")
	// ErrEmptyBody is returned if the head or tail of a snake without body is requested.
	ErrEmptyBody = errors.New("snake has no body")
)

// Opposite returns the reverse direction. Unknown directions return themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return d
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// step returns p moved by one unit in direction d.
// ok is false if the result would have a negative coordinate.
func (d Direction) step(p Point) (next Point, ok bool) {
	switch d {
	case DirectionUp:
		if p.Y == 0 {
			return p, false
		}
		return Point{p.X, p.Y - 1}, true
	case DirectionDown:
		return Point{p.X, p.Y + 1}, true
	case DirectionLeft:
		if p.X == 0 {
			return p, false
		}
		return Point{p.X - 1, p.Y}, true
	case DirectionRight:
		return Point{p.X + 1, p.Y}, true
	}
	return p, false
}

// Snake represents the snake controlled by the player.
// The body is ordered from tail (index 0) to head (last element).
type Snake struct {
	body      []Point
	direction Direction
}

// NewSnake returns a snake in its starting position: two segments in row 8, moving right.
func NewSnake() *Snake {
	return &Snake{
		body:      []Point{{0, 8}, {1, 8}},
		direction: DirectionRight,
	}
}

// newSnakeWithBody returns a snake with the given body (tail first) and direction.
func newSnakeWithBody(d Direction, body ...Point) *Snake {
	s := &Snake{
		body:      make([]Point, len(body)),
		direction: d,
	}
	copy(s.body, body)
	return s
}

// Direction returns the current direction of travel.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the body, tail first.
func (s *Snake) Body() []Point {
	b := make([]Point, len(s.body))
	copy(b, s.body)
	return b
}

// Contains reports whether any segment is at p.
func (s *Snake) Contains(p Point) bool {
	for i := range s.body {
		if s.body[i] == p {
			return true
		}
	}
	return false
}

// Head returns the leading segment.
func (s *Snake) Head() (Point, error) {
	if len(s.body) == 0 {
		return Point{}, ErrEmptyBody
	}
	return s.body[len(s.body)-1], nil
}

// Tail returns the trailing segment.
func (s *Snake) Tail() (Point, error) {
	if len(s.body) == 0 {
		return Point{}, ErrEmptyBody
	}
	return s.body[0], nil
}

// ChangeDirection sets the direction of travel.
// Reversing into the own neck and unknown directions are silently ignored.
func (s *Snake) ChangeDirection(d Direction) {
	if !d.Valid() || d == s.direction.Opposite() {
		return
	}
	s.direction = d
}

// Advance moves the snake one unit into the current direction and returns the new head.
// The length of the snake is preserved.
func (s *Snake) Advance() (Point, error) {
	head, err := s.Head()
	if err != nil {
		return Point{}, err
	}

	next, ok := s.direction.step(head)
	if !ok {
		return Point{}, ErrOutOfBounds
	}

	s.body = append(s.body, next)
	s.body = s.body[1:]
	return next, nil
}

// AteItself reports whether the head shares its position with another segment.
func (s *Snake) AteItself() bool {
	head, err := s.Head()
	if err != nil {
		panic(err)
	}

	count := 0
	for i := range s.body {
		if s.body[i] == head {
			count++
		}
	}
	return count > 1
}

// Grow inserts segment as the new tail.
func (s *Snake) Grow(segment Point) {
	s.body = append(s.body, Point{})
	copy(s.body[1:], s.body)
	s.body[0] = segment
}

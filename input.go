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
	log "github.com/sirupsen/logrus"
)

// DirectionQueueSize is the number of direction commands a DirectionQueue holds before it starts dropping the oldest.
const DirectionQueueSize = 16

// InputSource provides direction commands to the game loop.
//
// Poll must never block. It returns false if no command is available right now.
type InputSource interface {
	Poll() (Direction, bool)
}

// DirectionQueue is a bounded, multi-producer single-consumer queue of direction commands.
// Producers never block: if the queue is full, the oldest command is dropped.
type DirectionQueue struct {
	c chan Direction
}

// NewDirectionQueue returns an empty queue.
func NewDirectionQueue() *DirectionQueue {
	return &DirectionQueue{c: make(chan Direction, DirectionQueueSize)}
}

// Push adds a command. Unknown directions are ignored.
func (q *DirectionQueue) Push(d Direction) {
	if !d.Valid() {
		return
	}
	for {
		select {
		case q.c <- d:
			return
		default:
		}
		// Full - drop oldest and retry
		select {
		case old := <-q.c:
			log.WithField("dropped", old).Debugln("direction queue full")
		default:
		}
	}
}

// Poll returns the oldest queued command.
func (q *DirectionQueue) Poll() (Direction, bool) {
	select {
	case d := <-q.c:
		return d, true
	default:
		return "", false
	}
}

// drainLatest empties the input source and returns the most recent command.
// At most 4*DirectionQueueSize commands are read so a flooding producer can not stall a tick.
func drainLatest(in InputSource) (Direction, bool) {
	var last Direction
	found := false
	if in == nil {
		return last, false
	}
	for i := 0; i < 4*DirectionQueueSize; i++ {
		d, ok := in.Poll()
		if !ok {
			break
		}
		last = d
		found = true
	}
	return last, found
}

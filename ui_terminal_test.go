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
	"testing"
	"time"

	"github.com/gdamore/tcell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulationUI(t *testing.T) (*terminalUI, tcell.SimulationScreen, chan struct{}) {
	sim := tcell.NewSimulationScreen("UTF-8")
	quit := make(chan struct{}, 4)
	tui := &terminalUI{
		Input:  NewDirectionQueue(),
		Quit:   func() { quit <- struct{}{} },
		screen: sim,
	}
	require.NoError(t, tui.Initialise())
	t.Cleanup(func() { tui.Finish(Snapshot{}) })
	return tui, sim, quit
}

func TestTerminalUIDraw(t *testing.T) {
	tui, sim, _ := newSimulationUI(t)
	s := testSnapshot()
	require.NoError(t, tui.Draw(s))

	cells, width, _ := sim.GetContents()
	runeAt := func(x, y int) rune {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}

	x, y := screenPosition(s.Apple)
	assert.Equal(t, glyphApple, runeAt(x, y))
	x, y = screenPosition(s.Head())
	assert.Equal(t, glyphSnake, runeAt(x, y))
	assert.Equal(t, 'S', runeAt(0, 0))
	assert.Equal(t, glyphBorder, runeAt(0, 1))
	assert.Equal(t, glyphBorder, runeAt(boardWidth-1, GridSize+GridYOffset))
}

func TestTerminalUIKeys(t *testing.T) {
	tui, sim, quit := newSimulationUI(t)

	sim.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	assert.Eventually(t, func() bool {
		d, ok := tui.Input.Poll()
		return ok && d == DirectionUp
	}, time.Second, 5*time.Millisecond)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("quit not called")
	}
}

func TestTerminalUIFinish(t *testing.T) {
	tui, _, _ := newSimulationUI(t)
	require.NoError(t, tui.Finish(testSnapshot()))
	require.NoError(t, tui.Finish(testSnapshot()))

	done := make(chan struct{})
	go func() {
		tui.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Finish")
	}
}

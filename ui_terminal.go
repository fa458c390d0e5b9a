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
	"sync"

	"github.com/gdamore/tcell"
	log "github.com/sirupsen/logrus"
)

// terminalUI draws the game with tcell and feeds arrow keys into Input.
type terminalUI struct {
	// Input receives the decoded arrow keys. May be nil.
	Input *DirectionQueue
	// Quit is called if the player presses Escape, Ctrl-C or 'q'. May be nil.
	Quit func()

	screen tcell.Screen
	styles map[rune]tcell.Style
	ctx    context.Context
	done   context.CancelFunc
	once   *sync.Once
}

func (tui *terminalUI) Initialise() error {
	var err error

	tui.ctx, tui.done = context.WithCancel(context.Background())
	tui.once = new(sync.Once)

	if tui.screen == nil {
		tui.screen, err = tcell.NewScreen()
		if err != nil {
			return err
		}
	}

	err = tui.screen.Init()
	if err != nil {
		return err
	}

	tui.styles = map[rune]tcell.Style{
		glyphSnake:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		glyphApple:  tcell.StyleDefault.Foreground(tcell.ColorRed),
		glyphBorder: tcell.StyleDefault,
		glyphEmpty:  tcell.StyleDefault,
	}

	tui.screen.HideCursor()
	tui.screen.Clear()
	tui.screen.Show()

	go tui.mainLoop()

	return nil
}

func (tui *terminalUI) Draw(s Snapshot) error {
	if tui.screen == nil {
		return errors.New("terminal ui not initialised")
	}

	tui.screen.Clear()
	for y, line := range boardLines(s) {
		x := 0
		for _, r := range line {
			style, ok := tui.styles[r]
			if !ok || y == 0 {
				style = tcell.StyleDefault
			}
			tui.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}

	ox := boardWidth + 2
	for i, line := range buildGameOverviewStrings(s) {
		tui.drawString(ox, i+GridYOffset, line)
	}

	tui.screen.Show()
	return nil
}

func (tui *terminalUI) Finish(s Snapshot) error {
	if tui.screen == nil {
		return nil
	}
	tui.once.Do(func() {
		tui.screen.Fini()
		tui.done()
	})
	return nil
}

func (tui *terminalUI) Wait() {
	if tui.ctx == nil {
		return
	}
	<-tui.ctx.Done()
}

func (tui *terminalUI) drawString(x, y int, v string) {
	for i, r := range []rune(v) {
		tui.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// mainLoop forwards key events until the screen is finalised.
func (tui *terminalUI) mainLoop() {
	for {
		e := tui.screen.PollEvent()
		if e == nil {
			return
		}

		switch ev := e.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp:
				tui.push(DirectionUp)
			case tcell.KeyDown:
				tui.push(DirectionDown)
			case tcell.KeyLeft:
				tui.push(DirectionLeft)
			case tcell.KeyRight:
				tui.push(DirectionRight)
			case tcell.KeyRune:
				if ev.Rune() != 'q' {
					continue
				}
				fallthrough
			case tcell.KeyEscape, tcell.KeyCtrlC:
				log.Debugln("terminal ui: quit requested")
				if tui.Quit != nil {
					tui.Quit()
				}
			}
		case *tcell.EventResize:
			tui.screen.Sync()
		}
	}
}

func (tui *terminalUI) push(d Direction) {
	if tui.Input != nil {
		tui.Input.Push(d)
	}
}

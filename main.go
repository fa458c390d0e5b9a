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

// snake is a terminal snake game.
// The snake moves on a fixed 16x16 grid every 250ms and is steered with the arrow keys.
// Hitting a wall or itself ends the game.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load()
	envErr := err

	uiName := flag.String("ui", "terminal", "UI used for playing: terminal, cmd or quiet")
	print := flag.String("print", "", "Prints every tick into file")
	dump := flag.String("dump", "", "Dumps game data as gob to file")
	printScore := flag.String("printscore", "", "Prints final score and reason into file")
	spectate := flag.String("spectate", "", "Serves the game to websocket spectators on this address (e.g. :8080)")
	autopilot := flag.String("autopilot", "", "Lets an AI steer: greedy, random or any")
	replayFile := flag.String("replay", "", "Replays a file written by -dump instead of playing")
	seed := flag.Uint64("seed", 0, "Seed for apple placement. 0 uses the current time")
	logLevel := flag.String("log", "info", "Log level")
	logFile := flag.String("logfile", "", "Writes the log into file. Full screen UIs discard the log otherwise")
	flag.Parse()

	// Replace flags
	{
		env := os.Getenv("SNAKE_SPECTATE")
		if env != "" {
			*spectate = env
		}

		env = os.Getenv("SNAKE_LOG")
		if env != "" {
			*logLevel = env
		}
	}

	if *uiName == "terminal" && !isTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal, using quiet ui")
		*uiName = "quiet"
	}

	closeLog, err := setupLogging(*logLevel, *logFile, *uiName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()
	if envErr != nil && !os.IsNotExist(envErr) {
		log.WithError(envErr).Warnln("can not load .env")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	input := NewDirectionQueue()
	rng := NewRand(*seed)

	var UI UI
	switch *uiName {
	case "terminal":
		UI = &terminalUI{Input: input, Quit: cancel}
	case "cmd":
		UI = &cmdUI{Out: os.Stdout, Keys: &ansiKeyReader{In: os.Stdin, Input: input, Quit: cancel}}
	case "quiet":
		UI = quietUI{}
	default:
		fmt.Fprintf(os.Stderr, "unknown ui %q\n", *uiName)
		os.Exit(2)
	}

	if *autopilot != "" {
		ai, err := GetAI(*autopilot, rng)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.WithField("ai", ai.Name()).Infoln("autopilot enabled")
		UI = &autopilotUI{AI: ai, Input: input, UI: UI}
	}

	if *print != "" {
		UI = &teeUI{File: *print, UI: UI}
	}

	if *dump != "" {
		UI = &dumpUI{File: *dump, UI: UI}
	}

	if *printScore != "" {
		UI = &printScoreUI{File: *printScore, UI: UI}
	}

	if *spectate != "" {
		UI = &spectateUI{Addr: *spectate, UI: UI}
	}

	game := NewGame(rng)
	final := game.Snapshot()

	defer func() {
		err := recover()
		if err != nil {
			// Clearly close UI
			if UI != nil {
				UI.Finish(final)
			}
			log.Errorln(err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()

	err = UI.Initialise()
	if err != nil {
		panic(err)
	}

	if *replayFile != "" {
		snapshots, err := loadDump(*replayFile)
		if err != nil {
			panic(err)
		}
		final, err = replay(ctx, snapshots, UI, TickInterval)
		if err != nil {
			panic(err)
		}
	} else {
		err = game.Run(ctx, UI, input)
		final = game.Snapshot()
		if err != nil {
			panic(err)
		}
	}

	err = UI.Finish(final)
	if err != nil {
		panic(err)
	}
	UI.Wait()

	fmt.Printf("Game over! Score: %d (%s)\n", final.Score, final.Reason)
}

// setupLogging configures logrus. The returned function closes the log file.
func setupLogging(level, file, ui string) (func(), error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return func() {}, err
	}
	log.SetLevel(l)

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeFn, err
		}
		out = f
		closeFn = func() { f.Close() }
		log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	case ui != "quiet":
		// The terminal belongs to the UI
		out = io.Discard
	}
	log.SetOutput(out)
	return closeFn, nil
}

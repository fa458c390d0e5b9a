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
	"os"
	"strings"
)

// teeUI writes every tick as text into File before passing it on to UI.
type teeUI struct {
	File string
	UI   UI
	f    *os.File
	last int
}

func (t *teeUI) Initialise() error {
	if t.f != nil {
		return fmt.Errorf("file already opened")
	}
	var err error
	t.f, err = os.Create(t.File)
	if err != nil {
		t.f = nil
		return err
	}
	t.last = -1
	if t.UI != nil {
		return t.UI.Initialise()
	}
	return nil
}

func (t *teeUI) Draw(s Snapshot) error {
	if t.f != nil && s.Tick != t.last {
		t.last = s.Tick
		_, err := t.f.WriteString(fmt.Sprintf("Tick %d - Game %s\n%s\n%s\n\n", s.Tick, s.ID, strings.Join(boardLines(s), "\n"), strings.Join(buildGameOverviewStrings(s), "\n")))
		if err != nil {
			return err
		}
	}

	if t.UI != nil {
		return t.UI.Draw(s)
	}
	return nil
}

func (t *teeUI) Finish(s Snapshot) error {
	var err error
	if t.f != nil {
		_, err = t.f.WriteString(fmt.Sprintf("\nGame over! Score: %d (%s)\n", s.Score, s.Reason))
		closeErr := t.f.Close()
		if err == nil {
			err = closeErr
		}
		t.f = nil
	}
	if t.UI != nil {
		newErr := t.UI.Finish(s)
		if newErr != nil && err != nil {
			return fmt.Errorf("two errors: %s, %s", err.Error(), newErr.Error())
		} else if newErr != nil {
			err = newErr
		}
	}
	return err
}

func (t *teeUI) Wait() {
	if t.UI != nil {
		t.UI.Wait()
	}
}

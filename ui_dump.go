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
	"encoding/gob"
	"os"
)

// dumpUI collects one snapshot per tick and writes them gob encoded into File when the game finishes.
// The file can be played back with -replay.
type dumpUI struct {
	File      string
	UI        UI
	snapshots []Snapshot
}

func (d *dumpUI) Initialise() error {
	if d.UI != nil {
		return d.UI.Initialise()
	}
	return nil
}

func (d *dumpUI) Draw(s Snapshot) error {
	if len(d.snapshots) == 0 || d.snapshots[len(d.snapshots)-1].Tick != s.Tick {
		d.snapshots = append(d.snapshots, s)
	} else {
		d.snapshots[len(d.snapshots)-1] = s
	}

	if d.UI != nil {
		return d.UI.Draw(s)
	}
	return nil
}

func (d *dumpUI) Finish(s Snapshot) error {
	var err error
	if d.UI != nil {
		err = d.UI.Finish(s)
	}

	if len(d.snapshots) == 0 || d.snapshots[len(d.snapshots)-1].Tick != s.Tick {
		d.snapshots = append(d.snapshots, s)
	} else {
		d.snapshots[len(d.snapshots)-1] = s
	}

	f, newErr := os.Create(d.File)
	if newErr != nil {
		return newErr
	}
	defer f.Close()
	enc := gob.NewEncoder(f)
	newErr = enc.Encode(d.snapshots)

	if newErr != nil {
		return newErr
	}

	return err
}

func (d *dumpUI) Wait() {
	if d.UI != nil {
		d.UI.Wait()
	}
}

// loadDump reads snapshots written by dumpUI.
func loadDump(file string) ([]Snapshot, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snapshots []Snapshot
	err = gob.NewDecoder(f).Decode(&snapshots)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

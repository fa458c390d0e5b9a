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
)

// printScoreUI writes the outcome of the game as a single line into File.
type printScoreUI struct {
	File        string
	UI          UI
	initialised bool
}

func (p *printScoreUI) Initialise() error {
	p.initialised = true
	if p.UI != nil {
		return p.UI.Initialise()
	}
	return nil
}

func (p *printScoreUI) Draw(s Snapshot) error {
	if p.UI != nil {
		return p.UI.Draw(s)
	}
	return nil
}

func (p *printScoreUI) Finish(s Snapshot) error {
	var err error
	if p.UI != nil {
		err = p.UI.Finish(s)
	}

	if p.initialised {
		f, newErr := os.Create(p.File)
		if newErr != nil {
			return newErr
		}
		defer f.Close()

		_, newErr = f.WriteString(fmt.Sprintf("%d %s\n", s.Score, s.Reason))
		if newErr != nil {
			return newErr
		}
	}

	return err
}

func (p *printScoreUI) Wait() {
	if p.UI != nil {
		p.UI.Wait()
	}
}

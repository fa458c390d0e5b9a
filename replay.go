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
)

// replay draws the snapshots one per interval. It returns the last drawn snapshot.
// Cancelling ctx stops the replay early without an error.
func replay(ctx context.Context, snapshots []Snapshot, ui UI, interval time.Duration) (Snapshot, error) {
	if len(snapshots) == 0 {
		return Snapshot{}, errors.New("nothing to replay")
	}

	var last Snapshot
	for i := range snapshots {
		last = snapshots[i]
		err := ui.Draw(last)
		if err != nil {
			return last, fmt.Errorf("drawing tick %d: %w", last.Tick, err)
		}
		if i == len(snapshots)-1 {
			break
		}

		t := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return last, nil
		case <-t.C:
		}
	}
	return last, nil
}

//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

// Width is the capacity of every per-depth ring buffer (spec §3).
const Width = 64

// ringBuffer is a bounded FIFO of capacity Width: pushes append to the
// tail, dropping the head once full (spec §3). Index 0 is the oldest
// surviving entry, Len()-1 is the newest.
type ringBuffer[T any] struct {
	items []T
}

func (r *ringBuffer[T]) push(item T) {
	r.items = append(r.items, item)
	if len(r.items) > Width {
		r.items = r.items[1:]
	}
}

func (r *ringBuffer[T]) len() int {
	return len(r.items)
}

// at returns the item at absolute index i (0 = oldest).
func (r *ringBuffer[T]) at(i int) T {
	return r.items[i]
}

// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package inspector

type semaphore struct {
	x chan struct{}
}

func newSemaphore(v int) *semaphore {
	return &semaphore{
		x: make(chan struct{}, v),
	}
}

func (self *semaphore) Lock() {
	self.x <- struct{}{}
}

func (self *semaphore) Unlock() {
	<-self.x
}

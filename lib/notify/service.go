// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Driver is the native EC notification interface. Init acquires the
// notification resource, Wait blocks until the event with the given
// wire code fires and returns the code actually raised (failures are
// reported as a code the host cannot map), and Cleanup releases the
// resource.
//
// Wait must tolerate concurrent calls from multiple worker goroutines.
type Driver interface {
	Init() error
	Wait(code uint32) uint32
	Cleanup()
}

// ErrAlreadyActive reports an attempt to construct a second Service
// while one is live.
var ErrAlreadyActive = errors.New("notification service already active")

// serviceActive enforces the process-wide singleton: true while
// exactly one Service owns the driver resource.
var serviceActive atomic.Bool

// Service owns the process-wide notification resource. Construct with
// NewService, release with Close.
type Service struct {
	driver    Driver
	closeOnce sync.Once
}

// NewService acquires the notification resource. It fails with
// ErrAlreadyActive if another live Service exists, or with the
// driver's error if native initialization fails (the singleton slot is
// released again on that path, so a later attempt may succeed).
func NewService(driver Driver) (*Service, error) {
	if !serviceActive.CompareAndSwap(false, true) {
		return nil, ErrAlreadyActive
	}
	if err := driver.Init(); err != nil {
		serviceActive.Store(false)
		return nil, fmt.Errorf("initializing notification driver: %w", err)
	}
	return &Service{driver: driver}, nil
}

// Close releases the driver resource and the singleton slot. Safe to
// call more than once; only the first call does anything. Close does
// not stop receivers — close them first.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		s.driver.Cleanup()
		serviceActive.Store(false)
	})
}

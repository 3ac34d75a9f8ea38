// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides a small injectable time source. The real
// implementation delegates to the time package; the fake advances only
// under test control, which keeps the mock notification driver and the
// log viewer's diagnostic timestamps deterministic in tests.
package clock

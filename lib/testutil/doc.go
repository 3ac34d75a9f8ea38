// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds shared test helpers: deadline-bounded
// condition polling and channel receives that cannot hang a test run.
package testutil

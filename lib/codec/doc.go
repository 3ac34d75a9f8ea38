// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is ecmon's single entry point for CBOR serialization.
// The EC firmware's log decode table travels as deterministic CBOR
// inside the metadata section; keeping the encoder configuration here
// means every producer and consumer agrees on the bytes.
package codec

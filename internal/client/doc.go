// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, the security services and the local storage
// into a single process lifecycle: the security state is derived from the
// persisted flags at start, the UI drives it until the user quits, and the
// background jobs and storage are released on exit.
package client

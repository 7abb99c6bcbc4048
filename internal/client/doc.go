// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

// Package client implements the application runtime.
//
// It wires configuration, the local store, the caching transport, the remote
// adapter, business services, and background workers into a single process
// lifecycle.
package client

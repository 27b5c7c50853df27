// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import "errors"

var (
	// ErrUnknownStatus is returned when text does not name a connection status.
	ErrUnknownStatus = errors.New("unknown connection status")

	// ErrFetchFailed wraps any failure to load the listing from the backend.
	ErrFetchFailed = errors.New("property fetch failed")

	// ErrClosed is returned by operations on a closed Demo.
	ErrClosed = errors.New("demo is closed")
)

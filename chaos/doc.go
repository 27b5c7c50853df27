// Package chaos implements the network-condition simulation behind the listing demo:
// a controller mapping connection status to server region, the local lead queue,
// the delayed sync trigger and the notification policy.
//
// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0
package chaos

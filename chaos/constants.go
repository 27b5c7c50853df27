// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import "time"

// Timing defaults for the demo shell
const (
	DefaultSyncDelay    = 1500 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
)

// Notification kinds shown as toasts
const (
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
	KindWarning NotificationKind = "warning"
	KindError   NotificationKind = "error"
)

// Sync run outcomes reported to metrics
const (
	SyncOutcomeSynced    SyncOutcome = "synced"
	SyncOutcomeEmpty     SyncOutcome = "empty"
	SyncOutcomeCancelled SyncOutcome = "cancelled"
)

// Property fetch outcomes reported to metrics
const (
	FetchOutcomeOK     FetchOutcome = "ok"
	FetchOutcomeCached FetchOutcome = "cached"
	FetchOutcomeFailed FetchOutcome = "failed"
)

// Supported message catalog locales
const (
	LocaleEN = "en"
	LocaleVI = "vi"
)

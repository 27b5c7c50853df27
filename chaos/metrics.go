// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

// SyncOutcome describes how a sync trigger run ended.
type SyncOutcome string

// FetchOutcome describes how a property fetch ended.
type FetchOutcome string

// Recorder observes demo activity, typically to export metrics.
type Recorder interface {
	ObserveStatus(status ConnectionStatus, region ServerRegion)
	ObserveQueueDepth(depth int)
	ObserveLeadSubmitted(queued bool)
	ObserveSync(outcome SyncOutcome, synced int)
	ObserveFetch(outcome FetchOutcome)
}

// NopRecorder discards all observations.
type NopRecorder struct{}

func (NopRecorder) ObserveStatus(ConnectionStatus, ServerRegion) {}
func (NopRecorder) ObserveQueueDepth(int) {}
func (NopRecorder) ObserveLeadSubmitted(bool) {}
func (NopRecorder) ObserveSync(SyncOutcome, int) {}
func (NopRecorder) ObserveFetch(FetchOutcome) {}

// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConnectionStatus is the simulated network quality selected on the chaos panel.
// The zero value is not a valid status; use one of the exported values.
type ConnectionStatus struct {
	name string
}

var (
	StatusOnline   = ConnectionStatus{"ONLINE"}
	StatusDegraded = ConnectionStatus{"DEGRADED"}
	StatusOffline  = ConnectionStatus{"OFFLINE"}
)

// Statuses lists every status in chaos panel order.
func Statuses() []ConnectionStatus {
	return []ConnectionStatus{StatusOnline, StatusDegraded, StatusOffline}
}

func (s ConnectionStatus) String() string { return s.name }

// IsZero reports whether s was never set.
func (s ConnectionStatus) IsZero() bool { return s.name == "" }

// ParseStatus converts user text (case-insensitive) into a status.
func ParseStatus(text string) (ConnectionStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case StatusOnline.name:
		return StatusOnline, nil
	case StatusDegraded.name:
		return StatusDegraded, nil
	case StatusOffline.name:
		return StatusOffline, nil
	default:
		return ConnectionStatus{}, fmt.Errorf("%w: %q", ErrUnknownStatus, text)
	}
}

func (s ConnectionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.name)
}

func (s *ConnectionStatus) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseStatus(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ServerRegion is the simulated backend tier currently serving the page.
type ServerRegion struct {
	name string
}

var (
	RegionPrimary = ServerRegion{"PRIMARY"}
	RegionBackup  = ServerRegion{"BACKUP"}
	RegionEdge    = ServerRegion{"EDGE"}
)

func (r ServerRegion) String() string { return r.name }

func (r ServerRegion) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.name)
}

// RegionFor maps a connection status to the region that serves it.
func RegionFor(s ConnectionStatus) ServerRegion {
	switch s {
	case StatusDegraded:
		return RegionBackup
	case StatusOffline:
		return RegionEdge
	default:
		return RegionPrimary
	}
}

// DisplayName returns the region label shown in the header for a locale.
func (r ServerRegion) DisplayName(locale string) string {
	return CatalogFor(locale).Regions[r]
}

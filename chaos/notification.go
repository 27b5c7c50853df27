// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"fmt"
	"time"
)

// NotificationKind selects the toast style.
type NotificationKind string

// Notification is a transient, dismissible message for the user.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	// Status is set for notifications caused by a status change.
	Status *ConnectionStatus `json:"status,omitempty"`
	// Synced is the number of leads reported by a sync notification.
	Synced int       `json:"synced,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier receives every notification the demo emits, in emission order.
// Implementations must not call back into the Demo.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Catalog holds the fixed user-facing texts for one locale.
type Catalog struct {
	Status     map[ConnectionStatus]string
	Regions    map[ServerRegion]string
	SyncedFmt  string
	LeadQueued string
	LeadSent   string
}

var catalogs = map[string]*Catalog{
	LocaleEN: {
		Status: map[ConnectionStatus]string{
			StatusOffline:  "Network connection lost. Switched to offline storage mode.",
			StatusDegraded: "Unstable network. Routing to the backup region (Tokyo).",
			StatusOnline:   "Connection restored. Using the primary server region.",
		},
		Regions: map[ServerRegion]string{
			RegionPrimary: "AWS Singapore (Primary)",
			RegionBackup:  "AWS Tokyo (Backup)",
			RegionEdge:    "Edge CDN (Cache)",
		},
		SyncedFmt:  "Synced %d offline leads to the CRM.",
		LeadQueued: "You're offline. Your request was saved and will be sent when the connection returns.",
		LeadSent:   "Thank you! An agent will contact you shortly.",
	},
	LocaleVI: {
		Status: map[ConnectionStatus]string{
			StatusOffline:  "Mất kết nối mạng. Đã chuyển sang chế độ Lưu trữ Ngoại tuyến.",
			StatusDegraded: "Mạng không ổn định. Đang định tuyến sang Vùng dự phòng (Tokyo).",
			StatusOnline:   "Đã khôi phục kết nối. Đang sử dụng Vùng máy chủ chính.",
		},
		Regions: map[ServerRegion]string{
			RegionPrimary: "AWS Singapore (Chính)",
			RegionBackup:  "AWS Tokyo (Dự phòng)",
			RegionEdge:    "Edge CDN (Bộ nhớ đệm)",
		},
		SyncedFmt:  "Đã đồng bộ thành công %d khách hàng ngoại tuyến lên CRM.",
		LeadQueued: "Bạn đang ngoại tuyến. Yêu cầu đã được lưu và sẽ gửi khi có kết nối.",
		LeadSent:   "Cảm ơn bạn! Chuyên viên sẽ liên hệ trong thời gian sớm nhất.",
	},
}

// CatalogFor returns the catalog for locale, falling back to English.
func CatalogFor(locale string) *Catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs[LocaleEN]
}

// NotificationFor builds the single immediate notification for a status change.
func NotificationFor(s ConnectionStatus, locale string) Notification {
	kind := KindSuccess
	switch s {
	case StatusOffline:
		kind = KindError
	case StatusDegraded:
		kind = KindWarning
	}
	status := s
	return Notification{
		Kind:    kind,
		Message: CatalogFor(locale).Status[s],
		Status:  &status,
		At:      time.Now(),
	}
}

// SyncNotification reports that count queued leads were pushed to the CRM.
func SyncNotification(count int, locale string) Notification {
	return Notification{
		Kind:    KindSuccess,
		Message: fmt.Sprintf(CatalogFor(locale).SyncedFmt, count),
		Synced:  count,
		At:      time.Now(),
	}
}

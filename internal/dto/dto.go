// Package dto defines the API response shapes. Timestamps are serialized as
// milliseconds since epoch to stay compatible with previously stored data.
package dto

import "time"

// UnknownUserName is the author fallback when a user reference no longer
// resolves to a user row.
const UnknownUserName = "Unknown User"

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func toMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

package utils

import (
	"fmt"
	"time"
)

// ISOLayout is the naive (zone-less) ISO-8601 layout used for task times on the wire.
const ISOLayout = "2006-01-02T15:04:05"

// FormatISO formats t as a naive wall-clock timestamp, dropping any zone information.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// ParseISO parses a naive wall-clock timestamp into the local zone.
// RFC3339 input is accepted too; its offset is discarded and only the wall clock is kept.
func ParseISO(value string) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, value, time.Local)
	if err == nil {
		return t, nil
	}
	rfc, rfcErr := time.Parse(time.RFC3339, value)
	if rfcErr != nil {
		return time.Time{}, fmt.Errorf("invalid ISO-8601 time %q: %w", value, err)
	}
	return InLocal(rfc), nil
}

// ToNaiveUTC keeps the wall clock of t and tags it as UTC. Postgres `timestamp` columns
// are read back by pgx as UTC, so this is the representation stored in the database.
func ToNaiveUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// InLocal keeps the wall clock of t and moves it into the local zone.
func InLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

package cleanup

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"safetube/cleanup/pkg/catalog"
)

// DefaultRetentionDays is used when the catalog has no usable retention setting.
const DefaultRetentionDays = 7

// RetentionSource records where the effective retention period came from.
type RetentionSource string

const (
	// SourceSetting means the value was read from the settings table.
	SourceSetting RetentionSource = "setting"
	// SourceDefaultMissing means the key was not present.
	SourceDefaultMissing RetentionSource = "default_missing"
	// SourceDefaultInvalid means the stored value was not a non-negative integer.
	SourceDefaultInvalid RetentionSource = "default_invalid"
	// SourceDefaultUnavailable means the catalog could not be read.
	SourceDefaultUnavailable RetentionSource = "default_unavailable"
)

// RetentionSetting is the outcome of reading the retention period. It always
// carries a usable Days value; Err explains why the default was substituted.
type RetentionSetting struct {
	Days   int
	Source RetentionSource
	Err    error
}

// UsedDefault reports whether Days is the fallback value.
func (r RetentionSetting) UsedDefault() bool {
	return r.Source != SourceSetting
}

// ParseRetentionDays parses a stored retention value. A positive value too
// large for an int is read as math.MaxInt, so it still means "keep".
func ParseRetentionDays(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	days, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(trimmed, "-") {
		return math.MaxInt, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid retention value %q: %w", value, err)
	}
	if days < 0 {
		return 0, fmt.Errorf("invalid retention value %q: must not be negative", value)
	}
	return days, nil
}

// Cutoff returns now minus days whole days in unix seconds. It saturates at
// math.MinInt64 instead of wrapping, so no created_at is ever below it.
func Cutoff(now time.Time, days int) int64 {
	if days <= 0 {
		return now.Unix()
	}
	if int64(days) > math.MaxInt64/secondsPerDay {
		return math.MinInt64
	}
	span := int64(days) * secondsPerDay
	if now.Unix() < math.MinInt64+span {
		return math.MinInt64
	}
	return now.Unix() - span
}

// ReadRetention reads key from the catalog. The store is opened and closed
// within the call.
func ReadRetention(ctx context.Context, opener catalog.Opener, key string, defaultDays int) RetentionSetting {
	fallback := func(source RetentionSource, err error) RetentionSetting {
		return RetentionSetting{Days: defaultDays, Source: source, Err: err}
	}

	store, err := opener.Open(ctx)
	if err != nil {
		return fallback(SourceDefaultUnavailable, err)
	}
	defer store.Close()

	value, found, err := store.Setting(ctx, key)
	if err != nil {
		return fallback(SourceDefaultUnavailable, err)
	}
	if !found {
		return fallback(SourceDefaultMissing, nil)
	}

	days, err := ParseRetentionDays(value)
	if err != nil {
		return fallback(SourceDefaultInvalid, err)
	}

	return RetentionSetting{Days: days, Source: SourceSetting}
}

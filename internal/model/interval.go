package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// maxIntervalDays is the largest day count a time.Duration can hold.
const maxIntervalDays = math.MaxInt64 / int64(day)

var (
	intervalClock = regexp.MustCompile(`^(?:(\d+)\.)?(\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:\.(\d{1,7}))?)?$`)
	intervalDays  = regexp.MustCompile(`^\d+$`)
)

// Interval is a non-negative duration exchanged as a span string of the
// form "[d.]hh:mm[:ss[.fffffff]]", e.g. "01:00:00" or "2.00:00:00".
type Interval time.Duration

// NewInterval wraps d.
func NewInterval(d time.Duration) *Interval {
	i := Interval(d)
	return &i
}

// ParseInterval parses a span string. A bare integer is read as days.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	invalid := fmt.Errorf("invalid interval %q", s)

	if intervalDays.MatchString(s) {
		days, err := strconv.ParseInt(s, 10, 64)
		if err != nil || days > maxIntervalDays {
			return 0, invalid
		}
		return Interval(time.Duration(days) * day), nil
	}

	m := intervalClock.FindStringSubmatch(s)
	if m == nil {
		return 0, invalid
	}

	var parts [4]int64
	for i, v := range m[1:5] {
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, invalid
		}
		parts[i] = n
	}
	days, hours, minutes, seconds := parts[0], parts[1], parts[2], parts[3]
	if days > maxIntervalDays || hours > 23 || minutes > 59 || seconds > 59 {
		return 0, invalid
	}

	rest := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	if frac := m[5]; frac != "" {
		ticks, _ := strconv.ParseInt(frac+strings.Repeat("0", 7-len(frac)), 10, 64)
		rest += time.Duration(ticks) * 100 * time.Nanosecond
	}
	whole := time.Duration(days) * day
	if whole > math.MaxInt64-rest {
		return 0, invalid
	}
	return Interval(whole + rest), nil
}

// Duration returns the interval as a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i)
}

// String formats the interval as a span string.
func (i Interval) String() string {
	d := time.Duration(i)
	if d < 0 {
		d = 0
	}
	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", hours, minutes, seconds)
	if ticks := d / (100 * time.Nanosecond); ticks > 0 {
		fmt.Fprintf(&b, ".%07d", ticks)
	}
	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("interval must be a string: %w", err)
	}
	parsed, err := ParseInterval(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Value stores the interval as nanoseconds.
func (i Interval) Value() (driver.Value, error) {
	return int64(i), nil
}

// Scan implements sql.Scanner.
func (i *Interval) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*i = 0
	case int64:
		*i = Interval(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan interval: %w", err)
		}
		*i = Interval(n)
	default:
		return fmt.Errorf("scan interval: unsupported type %T", src)
	}
	return nil
}

package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}
func TestParseIntDefault(t *testing.T) {
    if got := ParseIntDefault("", 5); got != 5 {
        t.Fatalf("empty: %d", got)
    }
    if got := ParseIntDefault("12", 5); got != 12 {
        t.Fatalf("valid: %d", got)
    }
    if got := ParseIntDefault("xx", 5); got != 5 {
        t.Fatalf("invalid: %d", got)
    }
}

func TestParseFloatDefault(t *testing.T) {
    if got := ParseFloatDefault("0.25", 1); got != 0.25 {
        t.Fatalf("valid: %v", got)
    }
    if got := ParseFloatDefault("nope", 1); got != 1 {
        t.Fatalf("invalid: %v", got)
    }
}

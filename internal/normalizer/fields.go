package normalizer

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Decentr-net/argus/internal/entities"
)

// nolint:gochecknoglobals
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// unix timestamps above this value are treated as milliseconds.
const maxUnixSeconds = 1e11

var base64Body = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// lookup returns the first non-nil value stored under one of keys.
func lookup(r entities.RawRecord, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}

	return nil, false
}

func stringValue(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.Number:
		return v.String(), true
	case int, int32, int64, uint, uint32, uint64:
		return strconv.FormatInt(toInt64(v), 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}

	return "", false
}

// firstString returns the first non-blank string stored under keys.
func firstString(r entities.RawRecord, keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}

		if s, ok := stringValue(v); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	return ""
}

func toInt64(v interface{}) int64 {
	switch v := v.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(v)
	}

	return 0
}

// number casts v to a non-negative integer, 0 when v is not numeric.
func number(v interface{}) int64 {
	var f float64

	switch v := v.(type) {
	case int, int32, int64, uint, uint32, uint64:
		n := toInt64(v)
		switch {
		case n < 0:
			return 0
		case n > entities.MaxCounter:
			return entities.MaxCounter
		}
		return n
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			return 0
		}
		f = x
	case string, []byte:
		s, _ := stringValue(v)
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = x
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}

	if f >= float64(entities.MaxCounter) {
		return entities.MaxCounter
	}

	return int64(f)
}

// counter reads the first present spelling of a counter.
func counter(r entities.RawRecord, keys ...string) int64 {
	v, ok := lookup(r, keys...)
	if !ok {
		return 0
	}

	return number(v)
}

func parseTime(v interface{}) (time.Time, bool) {
	var t time.Time

	switch v := v.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		t = *v
	case string, []byte:
		s, _ := stringValue(v)
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false
		}

		for _, layout := range timeLayouts {
			if x, err := time.Parse(layout, s); err == nil {
				t = x
				break
			}
		}
	default:
		n := number(v)
		if n == 0 {
			return time.Time{}, false
		}
		if n > maxUnixSeconds {
			t = time.Unix(0, n*int64(time.Millisecond))
		} else {
			t = time.Unix(n, 0)
		}
	}

	if t.IsZero() {
		return time.Time{}, false
	}

	return t, true
}

// firstTime returns the first value under keys that parses as a timestamp.
func firstTime(r entities.RawRecord, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}

		if t, ok := parseTime(v); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

func truthy(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string, []byte:
		s, _ := stringValue(v)
		s = strings.TrimSpace(s)
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s != ""
	default:
		return number(v) > 0
	}
}

// imageURL turns a stored image reference into something a browser can render.
// Bare base64 payloads get a jpeg data URL prefix; anything unrecognized is dropped.
func imageURL(s string) string {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "data:image"),
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "https://"):
		return s
	}

	body := strings.Join(strings.Fields(s), "")
	if !base64Body.MatchString(body) {
		return ""
	}

	return "data:image/jpeg;base64," + body
}

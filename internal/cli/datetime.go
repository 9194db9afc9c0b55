package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::\d{2})?$`)
)

// parseDueDate parses:
// - YYYY-MM-DD (date-only, due at end of that local day)
// - YYYY-MM-DD HH:MM (local date+time)
// - RFC3339 / RFC3339Nano (timezone-aware)
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty due date")
	}

	if reDateOnly.MatchString(s) {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, err
		}
		// Date-only due dates mean "by the end of that day".
		t := d.Add(24*time.Hour - time.Second).UTC()
		return &t, nil
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		d, err := time.ParseInLocation("2006-01-02 15:04", m[1]+" "+m[2], time.Local)
		if err != nil {
			return nil, err
		}
		t := d.UTC()
		return &t, nil
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t := ts.UTC()
		return &t, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		t := ts.UTC()
		return &t, nil
	}

	return nil, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}

package common

import (
	"fmt"
	"time"
)

// AdmissionWindow is the daily time range in which registrations are accepted.
// Both ends are inclusive, in minutes since midnight. A window whose close is
// before its open spans midnight.
type AdmissionWindow struct {
	Open  int
	Close int
}

func ParseAdmissionWindow(open, close string) (AdmissionWindow, error) {
	o, err := parseClock(open)
	if err != nil {
		return AdmissionWindow{}, fmt.Errorf("invalid admission open time: %w", err)
	}
	c, err := parseClock(close)
	if err != nil {
		return AdmissionWindow{}, fmt.Errorf("invalid admission close time: %w", err)
	}
	return AdmissionWindow{Open: o, Close: c}, nil
}

func (w AdmissionWindow) Allows(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if w.Open <= w.Close {
		return m >= w.Open && m <= w.Close
	}
	return m >= w.Open || m <= w.Close
}

func (w AdmissionWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Open/60, w.Open%60, w.Close/60, w.Close%60)
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

package domain

import "fmt"

// Warning records a field that was silently defaulted during
// aggregation. The dashboard still renders; the warning keeps the
// degradation observable.
type Warning struct {
	Component string `json:"component"`
	Field     string `json:"field"`
	Reason    string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s.%s: %s", w.Component, w.Field, w.Reason)
}

// WarningList collects defaulting warnings alongside a result. The nil
// WarningList is valid and discards everything, so pure helpers can be
// called without one.
type WarningList struct {
	entries []Warning
}

func (l *WarningList) Add(component, field, reason string) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, Warning{Component: component, Field: field, Reason: reason})
}

func (l *WarningList) Entries() []Warning {
	if l == nil {
		return nil
	}
	return l.entries
}

func (l *WarningList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

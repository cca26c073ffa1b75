package ames

import (
	"strings"
	"time"
)

// primaryName extracts the leading name part of a VNAME line, i.e. the text
// before the first ';' with surrounding whitespace removed.
func primaryName(vname string) string {
	if idx := strings.Index(vname, ";"); idx >= 0 {
		vname = vname[:idx]
	}

	return strings.TrimSpace(vname)
}

// Names returns the primary names of all dependent variables, in column
// order.
func (d *Document) Names() []string {
	names := make([]string, len(d.VariableNames))
	for i, vn := range d.VariableNames {
		names[i] = primaryName(vn)
	}

	return names
}

// Columns exports the Document as a plain map from variable name to its
// scaled data column, keyed by primary name, with the independent variable
// included under its primary XNAME. The returned slices alias the Document's
// data; downstream consumers that shape the data further must copy first.
func (d *Document) Columns() map[string][]float64 {
	cols := make(map[string][]float64, len(d.Dependent)+1)
	cols[primaryName(d.IndependentName)] = d.Independent
	for i, name := range d.Names() {
		cols[name] = d.Dependent[i]
	}

	return cols
}

// Times interprets the independent variable as seconds since midnight UTC of
// StartDate and returns one timestamp per record. This matches the common
// convention of FFI 1001 time-series files whose XNAME declares seconds
// after midnight on the date in line 7.
func (d *Document) Times() []time.Time {
	ref := d.StartDate.Time()
	ts := make([]time.Time, len(d.Independent))
	for i, sec := range d.Independent {
		ts[i] = ref.Add(time.Duration(sec * float64(time.Second)))
	}

	return ts
}

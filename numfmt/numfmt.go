// Package numfmt detects the print format of numbers in string form and
// re-emits values in the same shape. Its main consumer is the NASA-AMES
// writer, which uses detected column formats to keep rewritten files
// byte-compatible with the source.
package numfmt

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/atmodata/atmodata/errs"
)

// Kind is the numeric type a detected format maps to.
type Kind int

const (
	// Int marks formats without decimal separator or exponent.
	Int Kind = iota
	// Float marks decimal and exponent-notation formats.
	Float
)

func (k Kind) String() string {
	if k == Int {
		return "int"
	}
	return "float"
}

// Format describes the print shape of a number string: the fmt verb that
// reproduces it and the numeric kind it parses to.
type Format struct {
	Verb string
	Kind Kind
}

// Sprint formats v with the detected verb. Int formats truncate.
func (f Format) Sprint(v float64) string {
	if f.Kind == Int {
		return fmt.Sprintf(f.Verb, int64(v))
	}
	return fmt.Sprintf(f.Verb, v)
}

// Detect classifies the number string s with "." as decimal separator.
func Detect(s string) (Format, error) {
	return DetectSeparator(s, '.')
}

// DetectSeparator classifies the number string s into one of four shapes
// (integer, decimal, exponent notation with and without decimals) and
// returns the fmt verb reproducing that shape. Unrecognized or ambiguous
// strings fail with ErrBadFormat.
func DetectSeparator(s string, decSep rune) (Format, error) {
	sep := regexp.QuoteMeta(string(decSep))
	s = strings.TrimSpace(s)

	classes := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"dec", regexp.MustCompile(`^([+-]?[0-9]+[` + sep + `][0-9]*|[+-]?[0-9]*[` + sep + `][0-9]+)$`)},
		{"no_dec", regexp.MustCompile(`^[+-]?[0-9]+$`)},
		{"exp_dec", regexp.MustCompile(`^[+-]?[0-9]+[` + sep + `][0-9]*[eE][+-]*[0-9]+$`)},
		{"exp_no_dec", regexp.MustCompile(`^[+-]?[0-9]+[eE][+-]*[0-9]+$`)},
	}

	var matched []string
	for _, c := range classes {
		if c.re.MatchString(s) {
			matched = append(matched, c.name)
		}
	}
	if len(matched) == 0 {
		return Format{}, fmt.Errorf("unrecognized number %q: %w", s, errs.ErrBadFormat)
	}
	if len(matched) > 1 {
		return Format{}, fmt.Errorf("ambiguous number %q (%v): %w", s, matched, errs.ErrBadFormat)
	}

	plus := ""
	switch matched[0] {
	case "dec":
		intPart, frac, _ := strings.Cut(s, string(decSep))
		if strings.HasPrefix(intPart, "+") {
			plus = "+"
		}
		if frac == "" {
			return Format{Verb: "%" + plus + "f", Kind: Float}, nil
		}
		return Format{Verb: fmt.Sprintf("%%%s.%df", plus, len(frac)), Kind: Float}, nil

	case "no_dec":
		if strings.HasPrefix(s, "+") {
			plus = "+"
		}
		return Format{Verb: "%" + plus + "d", Kind: Int}, nil

	case "exp_dec":
		intPart, rest, _ := strings.Cut(s, string(decSep))
		mantFrac, _, _ := strings.Cut(strings.ToUpper(rest), "E")
		if strings.HasPrefix(intPart, "+") {
			plus = "+"
		}
		return Format{Verb: fmt.Sprintf("%%%s.%dE", plus, len(mantFrac)), Kind: Float}, nil

	default: // exp_no_dec
		mant, _, _ := strings.Cut(strings.ToUpper(s), "E")
		if strings.HasPrefix(mant, "+") {
			plus = "+"
		}
		return Format{Verb: "%" + plus + "E", Kind: Float}, nil
	}
}

// StripMode selects which side zeros are stripped from in FormatStripped.
type StripMode int

const (
	StripRight StripMode = iota
	StripLeft
	StripBoth
)

// FormatStripped formats nums with decPlaces decimal places and strips
// zeros from the requested side. NaN values format as "NaN" and are left
// untouched. decPlaces must be at least 1.
func FormatStripped(nums []float64, decPlaces int, mode StripMode) ([]string, error) {
	if decPlaces < 1 {
		return nil, fmt.Errorf("decimal places must be >= 1, got %d", decPlaces)
	}

	out := make([]string, len(nums))
	for i, n := range nums {
		s := fmt.Sprintf("%.*f", decPlaces, n)
		if math.IsNaN(n) {
			out[i] = s
			continue
		}
		switch mode {
		case StripRight:
			s = strings.TrimRight(s, "0")
		case StripLeft:
			s = strings.TrimLeft(s, "0")
		case StripBoth:
			s = strings.Trim(s, "0")
		default:
			return nil, fmt.Errorf("unknown strip mode %d", mode)
		}
		out[i] = s
	}

	return out, nil
}

package calibration

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LineKind classifies a line of a calibration source.
type LineKind int

const (
	LineBlank       LineKind = iota // empty line, skipped
	LineNoSeparator                 // no '=' on the line, skipped
	LineValue                       // key with a parsed value
	LineInvalid                     // key with a value that is not a number
)

// LineResult is the outcome of parsing a single line.
type LineResult struct {
	Line  int
	Kind  LineKind
	Key   string
	Value float64
	Err   *LineError
}

// ParseLine parses "key=value". The key is everything before the first '=',
// untrimmed. The value is read by parseValue.
func ParseLine(n int, line string) LineResult {
	if line == "" {
		return LineResult{Line: n, Kind: LineBlank}
	}

	key, raw, ok := strings.Cut(line, "=")
	if !ok {
		return LineResult{Line: n, Kind: LineNoSeparator}
	}

	value, err := parseValue(raw)
	if err != nil {
		return LineResult{
			Line: n,
			Kind: LineInvalid,
			Key:  key,
			Err:  &LineError{Line: n, Key: key, Value: raw, Err: err},
		}
	}

	return LineResult{Line: n, Kind: LineValue, Key: key, Value: value}
}

// Parse reads r line by line. On a read error the lines parsed so far are
// returned together with the error.
func Parse(r io.Reader) ([]LineResult, error) {
	var results []LineResult

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		results = append(results, ParseLine(n, scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return results, pkgerrors.Wrapf(err, "failed to read calibration after line %d", n)
	}

	return results, nil
}

// Report summarizes what a merge changed.
type Report struct {
	Path    string       `json:"path,omitempty"`
	Applied []string     `json:"applied,omitempty"`
	Ignored []string     `json:"ignored,omitempty"`
	Errors  []*LineError `json:"errors,omitempty"`
}

func (r Report) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"path":    r.Path,
		"applied": r.Applied,
		"ignored": r.Ignored,
		"errors":  len(r.Errors),
	}
}

// Merge applies every successfully parsed, recognized line on top of prev.
// Fields without a valid line keep their previous value. A key appearing
// more than once takes its last valid value.
func Merge(prev State, results []LineResult) (State, Report) {
	next := prev
	var report Report

	for _, res := range results {
		switch res.Kind {
		case LineValue:
			if next.set(res.Key, res.Value) {
				report.Applied = append(report.Applied, res.Key)
			} else {
				report.Ignored = append(report.Ignored, res.Key)
			}
		case LineInvalid:
			report.Errors = append(report.Errors, res.Err)
		}
	}

	return next, report
}

// parseValue skips leading whitespace and reads the longest prefix of raw
// that forms a decimal number, "inf", "infinity" or "nan". Anything after it
// is ignored, so "90 # tuned" reads as 90. Values outside the float32 range
// are rejected.
func parseValue(raw string) (float64, error) {
	num := numberPrefix(strings.TrimLeft(raw, " \t\n\v\f\r"))
	if num == "" {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: raw, Err: strconv.ErrSyntax}
	}
	if _, err := strconv.ParseFloat(num, 32); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(num, 64)
}

func numberPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	rest := strings.ToLower(s[i:])
	switch {
	case strings.HasPrefix(rest, "infinity"):
		return s[:i+len("infinity")]
	case strings.HasPrefix(rest, "inf"):
		return s[:i+len("inf")]
	case strings.HasPrefix(rest, "nan"):
		// strconv does not take a sign on NaN.
		return "nan"
	}

	j, digits := skipDigits(s, i)
	if j < len(s) && s[j] == '.' {
		var frac int
		j, frac = skipDigits(s, j+1)
		digits += frac
	}
	if digits == 0 {
		return ""
	}

	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if end, n := skipDigits(s, k); n > 0 {
			j = end
		}
	}

	return s[:j]
}

func skipDigits(s string, i int) (end, n int) {
	end = i
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return end, end - i
}

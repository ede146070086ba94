package sheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrScript is returned for malformed script lines.
var ErrScript = errors.New("sheet: bad script line")

// RunScript executes a line-oriented script against s, writing output
// to w. Each line is one of:
//
//	set NAME VALUE   write a cell
//	get NAME         print "NAME = VALUE"
//	print            print every name in declaration order
//
// Blank lines and lines starting with # are ignored. Execution stops at
// the first failing line; the error names its line number.
func RunScript(s *Sheet, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := runLine(s, line, w); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func runLine(s *Sheet, line string, w io.Writer) error {
	fields := strings.Fields(line)

	switch fields[0] {
	case "set":
		if len(fields) != 3 {
			return fmt.Errorf("%w: usage: set NAME VALUE", ErrScript)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrScript, fields[2])
		}
		return s.Set(fields[1], v)

	case "get":
		if len(fields) != 2 {
			return fmt.Errorf("%w: usage: get NAME", ErrScript)
		}
		return printValue(s, fields[1], w)

	case "print":
		if len(fields) != 1 {
			return fmt.Errorf("%w: usage: print", ErrScript)
		}
		return Print(s, w)

	default:
		return fmt.Errorf("%w: unknown command %q", ErrScript, fields[0])
	}
}

// ParseAssignment parses "NAME=VALUE".
func ParseAssignment(arg string) (string, float64, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: expected NAME=VALUE, got %q", ErrScript, arg)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", 0, fmt.Errorf("%w: %q is not a finite number", ErrScript, raw)
	}
	return strings.TrimSpace(name), v, nil
}

// Print writes "NAME = VALUE" for every name in declaration order.
func Print(s *Sheet, w io.Writer) error {
	for _, name := range s.names {
		if err := printValue(s, name, w); err != nil {
			return err
		}
	}
	return nil
}

func printValue(s *Sheet, name string, w io.Writer) error {
	v, err := s.Get(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s = %s\n", name, FormatValue(v))
	return err
}

// FormatValue renders v in its shortest exact decimal form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

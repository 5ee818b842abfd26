package corpus

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// Line is one parsed record of the corpus file.
type Line struct {
	Chapter int
	Verse   int
	Text    string
	// Number is the 1-based line number in the source.
	Number int
}

const maxLineSize = 1 << 20

// ReadLines parses "chapter|verse|text" records from r.
//
// Blank lines and lines starting with '#' are skipped. Any other line must
// split into exactly three fields with positive integer indices, be unique by
// (chapter, verse) and appear in ascending order; the first violation aborts
// with a *errors.ParseError or *errors.DuplicateError carrying the line.
func ReadLines(r io.Reader) ([]Line, error) {
	var (
		lines []Line
		seen  = make(map[Ref]int)
		prev  Ref
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	num := 0
	for scanner.Scan() {
		num++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if num == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		if strings.TrimSpace(raw) == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		ln, err := parseLine(raw, num)
		if err != nil {
			return nil, err
		}

		ref := Ref{Chapter: ln.Chapter, Verse: ln.Verse}
		if first, dup := seen[ref]; dup {
			return nil, &errors.DuplicateError{Key: ref.String(), FirstLine: first, Line: num, Content: raw}
		}
		if len(lines) > 0 && ref.Compare(prev) < 0 {
			return nil, errors.NewParse("corpus", num, raw, "verse out of order after "+prev.String())
		}
		seen[ref] = num
		prev = ref
		lines = append(lines, ln)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIO("read", "corpus", err)
	}
	return lines, nil
}

func parseLine(raw string, num int) (Line, error) {
	fields := strings.Split(raw, "|")
	if len(fields) != 3 {
		return Line{}, errors.NewParse("corpus", num, raw,
			"expected 3 pipe-separated fields, got "+strconv.Itoa(len(fields)))
	}
	chapter, err := parseIndex(fields[0])
	if err != nil {
		return Line{}, &errors.ParseError{Format: "corpus", Line: num, Content: raw,
			Message: "chapter index is not a positive integer", Err: err}
	}
	verse, err := parseIndex(fields[1])
	if err != nil {
		return Line{}, &errors.ParseError{Format: "corpus", Line: num, Content: raw,
			Message: "verse index is not a positive integer", Err: err}
	}
	return Line{Chapter: chapter, Verse: verse, Text: fields[2], Number: num}, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if n < 1 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "index %d", n)
	}
	return n, nil
}

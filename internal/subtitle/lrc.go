package subtitle

import (
	"bufio"
	"cmp"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// lastLineFallback is the length given to the final LRC line when the song
// duration is unknown or shorter than its start.
const lastLineFallback = 5 * time.Second

var (
	// Matches timestamps like [00:12.34] or [00:12:34] or [00:12]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d+)(?:[.:](\d+))?\]`)

	// Matches metadata tags like [ar:Artist Name]
	metadataRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

// ParseLRC parses LRC lyrics. Each line ends where the next one starts and
// the last one ends at length. Blank timestamped lines mark instrumental
// gaps: they end the previous line and are then dropped.
func ParseLRC(r io.Reader, length time.Duration) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || metadataRe.MatchString(line) {
			continue
		}

		// [00:12.34][00:45.67]Text repeats Text at each timestamp.
		matches := timestampRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		text := strings.TrimSpace(timestampRe.ReplaceAllString(line, ""))

		for _, m := range matches {
			ts, ok := parseTimestamp(m)
			if !ok {
				continue
			}
			lines = append(lines, Line{Start: ts, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(lines, func(a, b Line) int {
		return cmp.Compare(a.Start, b.Start)
	})
	for i := range lines {
		if i+1 < len(lines) {
			lines[i].End = lines[i+1].Start
			continue
		}
		lines[i].End = length
		if length <= lines[i].Start {
			lines[i].End = lines[i].Start + lastLineFallback
		}
	}
	return Normalize(lines), nil
}

// ParsePlain turns untimed lyrics into unsynced lines, one per text line.
func ParsePlain(text string) []Line {
	var lines []Line
	for l := range strings.SplitSeq(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, Line{Text: l})
		}
	}
	return lines
}

// parseTimestamp converts a timestamp match into a duration.
func parseTimestamp(m []string) (time.Duration, bool) {
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}

	var frac time.Duration
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return 0, false
		}
		// .5 is tenths, .50 hundredths, .500 milliseconds.
		switch len(m[3]) {
		case 1:
			frac = time.Duration(n) * 100 * time.Millisecond
		case 2:
			frac = time.Duration(n) * 10 * time.Millisecond
		default:
			frac = time.Duration(n) * time.Millisecond
		}
	}

	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second + frac, true
}

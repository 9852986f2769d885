package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	roomDigitsRe = regexp.MustCompile(`(\d+)\s*$`)
	roomCleanRe  = regexp.MustCompile(`\s+`)
)

// ParsedRoom holds the structured data parsed from a room number.
type ParsedRoom struct {
	Number string
	Floor  int
	Seq    int
}

// RoomNumber normalizes a room number and infers floor and sequence from its
// trailing digits: the last two digits are the sequence, the rest the floor.
// "101" is floor 1 room 1, "A-203" floor 2 room 3, "1205" floor 12 room 5.
func RoomNumber(raw string) (ParsedRoom, error) {
	s := strings.TrimSpace(raw)
	s = roomCleanRe.ReplaceAllString(s, "")
	s = strings.ToUpper(s)
	if s == "" {
		return ParsedRoom{}, fmt.Errorf("room number is empty")
	}
	if len(s) > 32 {
		return ParsedRoom{}, fmt.Errorf("room number %q is too long", raw)
	}

	m := roomDigitsRe.FindStringSubmatch(s)
	if m == nil {
		// Free-form labels are accepted, there is just nothing to infer.
		return ParsedRoom{Number: s}, nil
	}

	digits := m[1]
	if len(digits) < 3 {
		n, _ := strconv.Atoi(digits)
		return ParsedRoom{Number: s, Seq: n}, nil
	}

	floor, err := strconv.Atoi(digits[:len(digits)-2])
	if err != nil {
		return ParsedRoom{}, fmt.Errorf("unable to parse floor from room number %q: %w", raw, err)
	}
	seq, err := strconv.Atoi(digits[len(digits)-2:])
	if err != nil {
		return ParsedRoom{}, fmt.Errorf("unable to parse sequence from room number %q: %w", raw, err)
	}
	return ParsedRoom{Number: s, Floor: floor, Seq: seq}, nil
}

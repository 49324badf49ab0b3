package reporting

import (
	"regexp"
	"strconv"
	"strings"
)

// Identifiers like "A 4022-4024" bill two physical rooms as one reservation.
var combinedRoomPattern = regexp.MustCompile(`([A-Z]\s)?(\d+)-(\d+)`)

// SplitRoomUnits derives the physical room units encoded in a raw room
// identifier. A range identifier yields its two endpoint rooms; anything
// else is a single unit equal to the trimmed identifier.
func SplitRoomUnits(roomIdentifier string) []string {
	match := combinedRoomPattern.FindStringSubmatch(roomIdentifier)
	if match == nil {
		return []string{strings.TrimSpace(roomIdentifier)}
	}
	prefix := match[1]
	start, _ := strconv.Atoi(match[2])
	end, _ := strconv.Atoi(match[3])
	return []string{
		strings.TrimSpace(prefix + strconv.Itoa(start)),
		strings.TrimSpace(prefix + strconv.Itoa(end)),
	}
}

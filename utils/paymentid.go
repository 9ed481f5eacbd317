package utils

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

const defaultCrew = "nocrew"

// NextPaymentID derives the next payment identifier for a (crew, outreach)
// partition from the most recently created one, e.g. "KIT/001" -> "KIT/002".
// An empty prev starts the sequence at 001; a non-numeric suffix restarts it
// and is logged for manual review.
func NextPaymentID(prev, crew string) string {
	seq := 1
	if prev != "" {
		if i := strings.LastIndex(prev, "/"); i >= 0 {
			if n, err := strconv.Atoi(prev[i+1:]); err == nil {
				seq = n + 1
			} else {
				log.Printf("payment id %q has a non-numeric suffix, restarting sequence at 001", prev)
			}
		}
	}
	return fmt.Sprintf("%s/%03d", CrewPrefix(crew), seq)
}

// CrewPrefix is the first 3 letters of the crew name, upper-cased.
// Crews shorter than 3 letters keep their full name. Sliced by rune so a
// multibyte crew name cannot produce a broken prefix.
func CrewPrefix(crew string) string {
	if crew == "" {
		crew = defaultCrew
	}
	prefix := []rune(strings.ToUpper(crew))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return string(prefix)
}

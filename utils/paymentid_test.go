package utils

import (
	"testing"
	"unicode/utf8"
)

func TestNextPaymentID_Sequences(t *testing.T) {
	cases := []struct {
		name string
		prev string
		crew string
		want string
	}{
		{"first in partition", "", "Kitchen", "KIT/001"},
		{"increments previous", "KIT/001", "Kitchen", "KIT/002"},
		{"pads to three digits", "KIT/009", "Kitchen", "KIT/010"},
		{"grows past three digits", "KIT/999", "Kitchen", "KIT/1000"},
		{"default crew", "", "", "NOC/001"},
		{"default crew continues", "NOC/041", "", "NOC/042"},
		{"short crew keeps full name", "", "ab", "AB/001"},
		{"prefix is upper-cased", "med/003", "medical", "MED/004"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextPaymentID(tc.prev, tc.crew); got != tc.want {
				t.Errorf("NextPaymentID(%q, %q) = %q, want %q", tc.prev, tc.crew, got, tc.want)
			}
		})
	}
}

func TestNextPaymentID_NonNumericSuffixRestarts(t *testing.T) {
	if got := NextPaymentID("KIT/abc", "Kitchen"); got != "KIT/001" {
		t.Errorf("expected sequence restart at KIT/001, got %q", got)
	}
	// No separator at all is treated like an empty partition
	if got := NextPaymentID("garbage", "Kitchen"); got != "KIT/001" {
		t.Errorf("expected KIT/001 for unparsable previous id, got %q", got)
	}
}

func TestCrewPrefix(t *testing.T) {
	if got := CrewPrefix("Logistics"); got != "LOG" {
		t.Errorf("CrewPrefix(Logistics) = %q, want LOG", got)
	}
	if got := CrewPrefix(""); got != "NOC" {
		t.Errorf("CrewPrefix(\"\") = %q, want NOC", got)
	}
}

func TestCrewPrefix_MultibyteCrewName(t *testing.T) {
	got := CrewPrefix("Équipe")
	if got != "ÉQU" {
		t.Errorf("CrewPrefix(Équipe) = %q, want ÉQU", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("prefix %q is not valid UTF-8", got)
	}
}

package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateETag(t *testing.T) {
	now := time.Now()

	a := GenerateETag("KIT/001", now)
	b := GenerateETag("KIT/001", now)
	if a != b {
		t.Errorf("etag not stable for identical inputs: %q vs %q", a, b)
	}

	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("etag should be quoted: %q", a)
	}

	if c := GenerateETag("KIT/002", now); c == a {
		t.Error("different ids produced the same etag")
	}
	if d := GenerateETag("KIT/001", now.Add(time.Second)); d == a {
		t.Error("different update times produced the same etag")
	}
}

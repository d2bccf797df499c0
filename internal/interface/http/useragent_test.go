package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMobileUserAgent(t *testing.T) {
	cases := []struct {
		name   string
		ua     string
		mobile bool
	}{
		{"android chrome", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36", true},
		{"iphone safari", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"ipad safari", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", true},
		{"windows chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", false},
		{"macos safari", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", false},
		{"curl", "curl/8.4.0", false},
		{"empty", "", false},
		// Matching is case-sensitive on purpose; lowercase spoofs fall
		// through to the desktop branch.
		{"lowercase android", "mozilla/5.0 (linux; android 14)", false},
		{"lowercase iphone", "mozilla/5.0 (iphone)", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.mobile, isMobileUserAgent(tc.ua))
		})
	}
}

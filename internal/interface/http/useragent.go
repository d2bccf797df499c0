package handlers

import "strings"

// mobileSignatures are matched as case-sensitive substrings of the
// User-Agent header. This is a heuristic, not a guarantee: spoofed or
// unusual mobile browsers fall through to the desktop branch, which still
// hands the user the deep link to copy manually.
var mobileSignatures = []string{"Android", "iPhone", "iPad"}

func isMobileUserAgent(ua string) bool {
	for _, sig := range mobileSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

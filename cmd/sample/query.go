package main

import (
	"net/url"
	"strings"
)

// parseQuery accepts a bare query string or a full share link.
func parseQuery(raw string) (url.Values, error) {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	return url.ParseQuery(raw)
}

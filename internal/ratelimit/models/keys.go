package models

import "strings"

const keyPrefix = "ratelimit"

// SanitizeKeySegment escapes ':' so a client-controlled segment cannot spill
// into an adjacent bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// NewKey builds the bucket key for scope and client, e.g. "ratelimit:login:203.0.113.7".
func NewKey(scope, client string) string {
	return keyPrefix + ":" + SanitizeKeySegment(scope) + ":" + SanitizeKeySegment(client)
}

// Package htmlsanitize strips dangerous markup from user-supplied HTML
// (club descriptions, notification bodies) before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows common formatting while removing scripts, event handlers,
// and javascript: URLs. Built once; bluemonday policies are safe for
// concurrent use.
var policy = bluemonday.UGCPolicy()

// strict drops all markup and keeps text only.
var strict = bluemonday.StrictPolicy()

// Sanitize returns s with unsafe HTML removed. Safe formatting tags and
// https links survive.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// PlainText strips all markup, for fields that should never contain HTML
// (titles, names).
func PlainText(s string) string {
	return strict.Sanitize(s)
}

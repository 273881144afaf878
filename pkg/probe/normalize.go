package probe

import "strings"

// Normalize ensures a raw URL string carries an HTTP scheme prefix,
// prepending "http://" when it does not start with "http". The result
// may still be invalid; validity is decided when the URL is probed.
func Normalize(raw string) string {
	if !strings.HasPrefix(raw, "http") {
		return "http://" + raw
	}
	return raw
}

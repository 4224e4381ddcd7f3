package scoring

import (
	"regexp"
	"strings"
)

var (
	quoteReplacer   = strings.NewReplacer(`"`, "", "'", "", "`", "")
	separatorRegexp = regexp.MustCompile(`[\s\-_]+`)
	nonAlnumRegexp  = regexp.MustCompile(`[^a-z0-9]`)
)

// NormalizeDrumType derives the grouping key of a free-text drum type label,
// so that "Kick Drum", "kick-drum" and "KICKDRUM" land in one group. The
// mapping is lossy and many-to-one; the key is computed on read and never
// stored. An empty result means the label carries no usable key.
func NormalizeDrumType(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ""
	}
	normalized = quoteReplacer.Replace(normalized)
	normalized = separatorRegexp.ReplaceAllString(normalized, "")
	return nonAlnumRegexp.ReplaceAllString(normalized, "")
}

// DrumTypeKey is NormalizeDrumType over an optional label.
func DrumTypeKey(value *string) string {
	if value == nil {
		return ""
	}
	return NormalizeDrumType(*value)
}

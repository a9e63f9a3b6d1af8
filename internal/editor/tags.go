package editor

import "strings"

// NormalizeTags trims tags and drops empty and repeated ones, keeping the
// first occurrence. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// AddTag returns tags with tag appended. tags is not modified.
func AddTag(tags []string, tag string) []string {
	next := make([]string, 0, len(tags)+1)
	next = append(next, tags...)
	return NormalizeTags(append(next, tag))
}

// RemoveTag returns tags without tag. tags is not modified.
func RemoveTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	next := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) != tag {
			next = append(next, t)
		}
	}
	return NormalizeTags(next)
}

package util

import "strings"

// EntryPrefix returns the storage prefix owned by a namespace.
func EntryPrefix(ns string) string {
	return "entry:" + ns + ":"
}

// UserKeys strips prefix from every storage key that carries it.
// Keys without the prefix are dropped.
func UserKeys(prefix string, storageKeys []string) []string {
	out := make([]string, 0, len(storageKeys))
	for _, k := range storageKeys {
		if uk, ok := strings.CutPrefix(k, prefix); ok {
			out = append(out, uk)
		}
	}
	return out
}

// GlobEscape quotes the glob metacharacters understood by Redis MATCH.
func GlobEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

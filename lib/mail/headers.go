package mail

import "sort"

// Headers is a part header map.
// Keys are stored exactly as given, no canonicalization is done.
type Headers map[string][]string

func OneHeaderVal(v string) []string {
	return []string{v}
}

// case-sensitive
func (h Headers) GetFirst(x string) string {
	if s, ok := h[x]; ok && len(s) != 0 {
		return s[0]
	}
	return ""
}

// Add appends value v to key k.
func (h Headers) Add(k, v string) {
	h[k] = append(h[k], v)
}

// Set replaces all values of k with v.
func (h Headers) Set(k, v string) {
	h[k] = OneHeaderVal(v)
}

// SortedKeys returns keys in byte-wise lexicographic order.
func (h Headers) SortedKeys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

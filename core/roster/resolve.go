package roster

import (
	"strconv"
	"strings"
)

// UsedSet tracks identifiers already taken, case-insensitively. It is
// mutated as records are emitted so sibling rows of one batch can never
// collide with each other or with externally supplied identifiers.
type UsedSet struct {
	members map[string]struct{}
}

func NewUsedSet(ids ...string) *UsedSet {
	s := &UsedSet{members: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *UsedSet) Has(id string) bool {
	_, ok := s.members[strings.ToLower(id)]
	return ok
}

func (s *UsedSet) Add(id string) {
	s.members[strings.ToLower(id)] = struct{}{}
}

func (s *UsedSet) Len() int {
	return len(s.members)
}

// Resolve disambiguates candidate against the set by appending a numeric
// suffix (1, 2, 3, …) until unique, then registers and returns the result.
// When maxLen > 0 the candidate is trimmed so the suffixed identifier
// stays within bounds. Deduplication happens here rather than downstream:
// the batch's uniqueness guarantee must hold even when the remote system
// never reports conflicts back.
func (s *UsedSet) Resolve(candidate string, maxLen int) string {
	if !s.Has(candidate) {
		s.Add(candidate)
		return candidate
	}
	for i := 1; ; i++ {
		suffix := strconv.Itoa(i)
		next := trimForSuffix(candidate, suffix, maxLen) + suffix
		if !s.Has(next) {
			s.Add(next)
			return next
		}
	}
}

// trimForSuffix cuts base so that base+suffix fits in maxLen characters.
func trimForSuffix(base, suffix string, maxLen int) string {
	if maxLen <= 0 {
		return base
	}
	runes := []rune(base)
	keep := maxLen - len(suffix)
	if keep < 1 {
		keep = 1
	}
	if len(runes) > keep {
		runes = runes[:keep]
	}
	return string(runes)
}

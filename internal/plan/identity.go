package plan

import (
	"strconv"
	"unicode/utf16"
)

// identityVersion namespaces persisted completion state so a future keying
// schema change starts from a clean slate instead of migrating.
const identityVersion = "v1"

// Identity returns the coarse completion-state identity for a plan: a 32-bit
// FNV-1a hash of the plan id, falling back to the idea, falling back to the
// literal "latest". The hash is intentionally independent of step content so
// regenerating the same idea reuses prior check state.
func Identity(p *Plan) string {
	seed := "latest"
	if p != nil {
		switch {
		case p.ID != "":
			seed = p.ID
		case p.Idea != "":
			seed = p.Idea
		}
	}
	return identityVersion + "-" + strconv.FormatUint(uint64(fnv1a32(seed)), 16)
}

// fnv1a32 hashes the UTF-16 code units of s.
func fnv1a32(s string) uint32 {
	h := uint32(0x811c9dc5)
	for _, u := range utf16.Encode([]rune(s)) {
		h ^= uint32(u)
		h *= 0x01000193
	}
	return h
}

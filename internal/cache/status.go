package cache

import "sort"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// StatusCache maps numeric status codes to their labels and back.
// Entries are fixed at construction; lookups are safe for concurrent use.
type StatusCache struct {
	entries map[int]string
	codes   []int
}

// NewStatusCache creates a StatusCache holding a copy of entries.
func NewStatusCache(entries map[int]string) *StatusCache {
	c := &StatusCache{entries: make(map[int]string, len(entries))}
	for code, label := range entries {
		c.entries[code] = label
		c.codes = append(c.codes, code)
	}
	// reverse lookups walk codes in order so duplicate labels resolve the same way
	sort.Ints(c.codes)
	return c
}

// NewDefaultStatusCache creates a StatusCache seeded with 1 -> active and 0 -> inactive.
func NewDefaultStatusCache() *StatusCache {
	return NewStatusCache(map[int]string{
		1: StatusActive,
		0: StatusInactive,
	})
}

// Translate resolves value, either a code or a label, against the cache.
//
// A value matching a code resolves to its label. A value matching a label
// resolves to the label itself when returnLabel is set and to its code
// otherwise. Anything else reports false.
func (c *StatusCache) Translate(value any, returnLabel bool) (any, bool) {
	if label, ok := c.lookup(value); ok {
		return label, true
	}

	if s, ok := value.(string); ok {
		for _, code := range c.codes {
			if c.entries[code] == s {
				if returnLabel {
					return s, true
				}
				return code, true
			}
		}
	}

	// last chance: the value itself as a key, strings are never coerced
	if label, ok := c.lookup(value); ok {
		return label, true
	}
	return nil, false
}

// Label returns the label for code.
func (c *StatusCache) Label(code int) (string, bool) {
	v, ok := c.Translate(code, true)
	if !ok {
		return "", false
	}
	label, ok := v.(string)
	return label, ok
}

// Code returns the code for label.
func (c *StatusCache) Code(label string) (int, bool) {
	v, ok := c.Translate(label, false)
	if !ok {
		return 0, false
	}
	code, ok := v.(int)
	return code, ok
}

func (c *StatusCache) lookup(value any) (string, bool) {
	code, ok := toCode(value)
	if !ok {
		return "", false
	}
	label, ok := c.entries[code]
	return label, ok
}

func toCode(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

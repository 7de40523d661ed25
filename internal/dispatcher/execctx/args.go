package execctx

import "maps"

// Args are the arguments of a buffer-layer command.
type Args map[string]any

// Clone returns a shallow copy.
func (a Args) Clone() Args {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Get retrieves a value.
func (a Args) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// String retrieves a string value.
func (a Args) String(key string) string {
	if v, ok := a.Get(key); ok {
		switch s := v.(type) {
		case string:
			return s
		case rune:
			return string(s)
		}
	}
	return ""
}

// Int retrieves an int value.
func (a Args) Int(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// Bool retrieves a bool value.
func (a Args) Bool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Rune retrieves a single character stored as a rune or a one-rune string.
func (a Args) Rune(key string) rune {
	if v, ok := a.Get(key); ok {
		switch r := v.(type) {
		case rune:
			return r
		case string:
			for _, c := range r {
				return c
			}
		}
	}
	return 0
}

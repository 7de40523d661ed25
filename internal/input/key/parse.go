package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmpty is returned for an empty key specification.
	ErrEmpty = errors.New("empty key specification")

	// ErrInvalid is returned for a specification that names no key.
	ErrInvalid = errors.New("invalid key specification")
)

// Parse parses one key in Vim notation: a single character or a <...>
// group such as <Esc>, <C-r> or <lt>.
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmpty
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracket(spec[1 : len(spec)-1])
	}
	r, size := utf8.DecodeRuneInString(spec)
	if size != len(spec) || r == utf8.RuneError {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalid, spec)
	}
	return Rune(r), nil
}

// MustParse is Parse for specifications known to be valid.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

func parseBracket(inner string) (Event, error) {
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		switch inner[0] {
		case 'C', 'c':
			mods |= ModCtrl
		case 'A', 'a', 'M', 'm':
			mods |= ModAlt
		case 'S', 's':
			mods |= ModShift
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalid, inner[:1])
		}
		inner = inner[2:]
	}

	if e, ok := aliases[strings.ToLower(inner)]; ok {
		e.Mod = mods
		if e.Key == KeyRune && mods.Has(ModCtrl) {
			return Ctrl(e.Rune), nil
		}
		return e, nil
	}
	r, size := utf8.DecodeRuneInString(inner)
	if size == 0 || size != len(inner) {
		return Event{}, fmt.Errorf("%w: <%s>", ErrInvalid, inner)
	}
	if mods.Has(ModCtrl) {
		e := Ctrl(r)
		e.Mod |= mods
		return e, nil
	}
	return Event{Key: KeyRune, Rune: r, Mod: mods}, nil
}

// ParseSequence parses a run of keys such as "3dw<Esc>". A '<' that does
// not start a valid group is taken literally.
func ParseSequence(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 1 {
				if e, err := parseBracket(s[1:end]); err == nil {
					events = append(events, e)
					s = s[end+1:]
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 in %q", ErrInvalid, s)
		}
		if r == '\n' {
			events = append(events, Enter)
		} else {
			events = append(events, Rune(r))
		}
		s = s[size:]
	}
	return events, nil
}

// FormatSequence writes events back in Vim notation.
func FormatSequence(events []Event) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.VimString())
	}
	return b.String()
}

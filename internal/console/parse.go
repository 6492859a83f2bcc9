package console

import (
	"fmt"
	"strings"
)

// splitArgs splits a console line into fields, keeping double-quoted
// sequences together: `send 123 "hello there"` → [send 123 hello there].
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unclosed quote in %q", line)
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}

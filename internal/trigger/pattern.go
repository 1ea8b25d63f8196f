package trigger

import (
	"fmt"
	"strings"
)

type segment struct {
	literal string
	param   string
}

// pattern is a parsed document path template.
type pattern struct {
	raw      string
	segments []segment
}

func parsePattern(raw string) (pattern, error) {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return pattern{}, fmt.Errorf("empty pattern")
	}

	parts := strings.Split(trimmed, "/")
	p := pattern{raw: trimmed, segments: make([]segment, 0, len(parts))}
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		switch {
		case part == "":
			return pattern{}, fmt.Errorf("pattern %q has an empty segment", raw)
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				return pattern{}, fmt.Errorf("pattern %q has an invalid wildcard %q", raw, part)
			}
			if seen[name] {
				return pattern{}, fmt.Errorf("pattern %q repeats wildcard %q", raw, name)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{param: name})
		case strings.ContainsAny(part, "{}"):
			return pattern{}, fmt.Errorf("pattern %q has an invalid segment %q", raw, part)
		default:
			p.segments = append(p.segments, segment{literal: part})
		}
	}
	return p, nil
}

// match returns the captured wildcard values when path matches the pattern.
func (p pattern) match(path string) (map[string]string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range p.segments {
		if parts[i] == "" {
			return nil, false
		}
		if seg.param != "" {
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

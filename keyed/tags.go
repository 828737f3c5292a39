package keyed

import (
	"fmt"
	"strings"
)

// parseStructTag parses a tony struct tag into key=value pairs and flags.
// Flags map to the empty string: `tony:"path=a.b,optional"`.
func parseStructTag(tag string) (map[string]string, error) {
	res := map[string]string{}
	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if ok && key == "" {
			return nil, fmt.Errorf("invalid tag: empty key in %q", part)
		}
		if _, dup := res[key]; dup {
			return nil, fmt.Errorf("invalid tag: duplicate %q", key)
		}
		res[key] = strings.TrimSpace(value)
	}
	for key := range res {
		switch key {
		case "path", "optional", "omit":
		default:
			return nil, fmt.Errorf("invalid tag: unknown key %q", key)
		}
	}
	return res, nil
}

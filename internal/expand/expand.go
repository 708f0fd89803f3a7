package expand

import (
	"strings"

	"github.com/grafana/regexp"
)

var re = regexp.MustCompile(`\$\{([a-zA-Z0-9_.-]+)(?::-([^}]*))?\}`)

// Expand replaces ${key} and ${key:-default} in v. mapping reports whether
// key is set; unset keys expand to their default, or to nothing.
func Expand(v string, mapping func(string) (string, bool)) string {
	return re.ReplaceAllStringFunc(v, func(s string) string {
		m := re.FindStringSubmatch(s)
		if value, ok := mapping(m[1]); ok {
			return value
		}
		return m[2]
	})
}

// Env maps "env.NAME" keys to environment variables through lookup, which
// is normally os.LookupEnv.
func Env(lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		name, ok := strings.CutPrefix(key, "env.")
		if !ok {
			return "", false
		}
		return lookup(name)
	}
}

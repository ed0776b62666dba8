package templates

import "golang.org/x/text/message"

// Localizer provides translated strings for page components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// keyLookup is implemented by localizers that resolve plain keys with a base
// language fallback.
type keyLookup interface {
	T(key string) string
}

// T returns a translated string or the key if no localizer is available.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if keyString, ok := key.(string); ok {
			return keyString
		}
		return ""
	}
	if len(args) == 0 {
		if lookup, ok := loc.(keyLookup); ok {
			if keyString, ok := key.(string); ok {
				return lookup.T(keyString)
			}
		}
	}
	return loc.Sprintf(key, args...)
}

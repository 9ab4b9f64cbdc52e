package config

import "log"

// MustNonEmpty aborts startup when a required env value is missing. The JWT
// secret in particular has no fallback: running with a default secret would
// make every issued token forgeable.
func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

package cypher

import (
	"github.com/cypherplan/cyq/src/logging"
	"github.com/cypherplan/cyq/src/observability"
)

// Config holds compiler-wide knobs, nested the way the teacher's
// driver.Config groups TLS/pool/observability/logging sub-configs.
type Config struct {
	// MaxVLEHops holds a hop cap for variable-length traversals, separate
	// from a query's own `*lo..hi` upper bound. Nothing in this repository
	// reads it: Compile does not consult it, and vle.Engine takes its depth
	// limit only from the Bounds it is given.
	MaxVLEHops int

	// DefaultGraphNamespace is used when a caller of Compile passes an
	// empty graph name.
	DefaultGraphNamespace string

	Observability *observability.Config
	Logging       logging.Level
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxVLEHops:            1000,
		DefaultGraphNamespace: "default",
		Observability:         observability.DefaultConfig(),
		Logging:               logging.LevelInfo,
	}
}

// Package lifecycle holds timing constants shared by start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every fx start and stop hook (DB ping, server shutdown, client close).
const DefaultTimeout = 10 * time.Second

// Package lifecycle holds shared timeouts for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start/stop hooks such as the DB ping and the HTTP
// server shutdown.
const DefaultTimeout = 10 * time.Second

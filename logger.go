package match

import (
	"log/slog"
	"os"
)

// logger is the package-level structured logger used for the handful of
// observability points the core has: market-order residual discards and
// invariant-violation panics. Swap it with SetLogger before constructing
// an Engine if the default JSON-to-stdout handler doesn't fit the host.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger replaces the package-level logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

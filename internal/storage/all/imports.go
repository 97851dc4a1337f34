// Package all registers every storage backend with the factory. Binaries
// blank-import this package; the config decides which backend actually runs.
package all

import (
	_ "ecometl/internal/storage/postgres"
	_ "ecometl/internal/storage/sqlite"
)

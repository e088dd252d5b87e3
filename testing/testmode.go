// Package testing switches binaries into test mode so their entrypoints can be
// exercised without Postgres or Redis.
package testing

import (
	"os"
	"sync"

	"github.com/akount/akount/internal/app"
)

var once sync.Once

// EnsureTestMode sets AKOUNT_TEST_MODE for the process and refreshes the cached flag.
func EnsureTestMode() {
	once.Do(func() {
		_ = os.Setenv(app.TestModeEnv, "1")
	})
	app.RefreshTestMode()
}

package app

import (
	"os"
	"strconv"
	"sync"
)

// TestModeEnv disables outbound connections when set to a true value.
const TestModeEnv = "AKOUNT_TEST_MODE"

var (
	testModeMu     sync.RWMutex
	testModeLoaded bool
	testMode       bool
)

// InTestMode reports whether binaries should exit before dialing Postgres or Redis.
func InTestMode() bool {
	testModeMu.RLock()
	loaded, on := testModeLoaded, testMode
	testModeMu.RUnlock()
	if loaded {
		return on
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads the environment and returns the new value.
func RefreshTestMode() bool {
	on, _ := strconv.ParseBool(os.Getenv(TestModeEnv))
	testModeMu.Lock()
	testModeLoaded, testMode = true, on
	testModeMu.Unlock()
	return on
}

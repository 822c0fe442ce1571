package app

import (
	"testing"

	"go.uber.org/goleak"
)

// FetchAll fans out goroutines; every test must leave none behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

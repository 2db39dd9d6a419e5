package main

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ListenFailureExitsNonZero(t *testing.T) {
	// GIVEN: the configured port is already taken
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()

	port := busy.Addr().(*net.TCPAddr).Port
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("RUN_RETENTION", "0")
	t.Setenv("LOG_LEVEL", "error")

	// WHEN: the server starts
	code := run()

	// THEN: the failure is reported through the exit code
	assert.Equal(t, 1, code)
}

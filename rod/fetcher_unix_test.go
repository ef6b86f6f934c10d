//go:build integration && !windows

package rod_test

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/bizextract/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Close_StopsBrowserProcess(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)

	proc, err := os.FindProcess(pid)
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.Signal(0)), "browser should be running")

	require.NoError(t, fetcher.Close())

	assert.Eventually(t, func() bool {
		return proc.Signal(syscall.Signal(0)) != nil
	}, 2*time.Second, 50*time.Millisecond, "browser should exit after Close")
}

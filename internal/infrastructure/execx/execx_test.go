package execx

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if err := LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	res, err := Exec{}.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
	assert.Equal(t, "err\nout", res.CombinedOutput())

	_, err = Exec{}.Run(context.Background(), "sh", "-c", "exit 3")
	assert.Error(t, err)
}

func TestExec_RunCancelled(t *testing.T) {
	if err := LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Exec{}.Run(ctx, "sleep", "5")
	assert.Error(t, err)
}

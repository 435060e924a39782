package device

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProcessesCommandsUntilEOF(t *testing.T) {
	var out bytes.Buffer
	m := New(NewWallClock(), &out)

	in := strings.NewReader("M\nG1\nBOGUS\n")
	err := Run(context.Background(), m, in)
	require.NoError(t, err)

	assert.Equal(t, ModeManual, m.Mode())
	assert.Equal(t, ColorGreen, m.Light(1))
	assert.Contains(t, out.String(), "UNKNOWN COMMAND: BOGUS")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	m := New(NewWallClock(), &out)

	ctx, cancel := context.WithCancel(context.Background())
	r, w := io.Pipe()
	defer w.Close()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, m, r)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}

package device

import (
	"bufio"
	"context"
	"io"
	"time"

	"smart-traffic-control/protocol"
)

// tickInterval is how often the timing checks run between command polls.
const tickInterval = 5 * time.Millisecond

// Run drives the machine from a line-oriented byte stream: poll for a
// command, process it fully, then perform the timing checks. It returns when
// the context is cancelled or the stream ends.
//
// The diagnostic routine blocks the loop for its fixed duration; lines that
// arrive while it runs are drained unread afterwards, matching the board's
// behavior of dropping, not queueing, commands during the routine.
func Run(ctx context.Context, m *Machine, in io.Reader) error {
	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			cmd := protocol.Parse(line)
			m.Apply(cmd)
			if cmd.Kind == protocol.KindTest {
				drain(lines)
			}
		case <-ticker.C:
			m.Tick()
		}
	}
}

// drain discards any lines buffered while the machine was busy.
func drain(lines <-chan string) {
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

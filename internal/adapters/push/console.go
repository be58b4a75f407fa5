package push

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// ConsoleDispatcher writes notifications to a writer instead of delivering them.
type ConsoleDispatcher struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleDispatcher creates a dispatcher that prints to out.
func NewConsoleDispatcher(out io.Writer) *ConsoleDispatcher {
	return &ConsoleDispatcher{out: out}
}

// Send prints the message.
func (d *ConsoleDispatcher) Send(ctx context.Context, msg secondary.PushMessage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", secondary.ErrDispatchFailed, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := fmt.Fprintf(d.out, "[push] to=%s title=%q body=%q\n", msg.Token, msg.Title, msg.Body); err != nil {
		return fmt.Errorf("%w: %w", secondary.ErrDispatchFailed, err)
	}
	return nil
}

// Ensure ConsoleDispatcher implements the interface
var _ secondary.PushDispatcher = (*ConsoleDispatcher)(nil)

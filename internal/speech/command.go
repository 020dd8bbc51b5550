package speech

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Command shells out to an espeak-style synthesizer binary. Playback runs
// in the background; Cancel kills the running process.
type Command struct {
	binary string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommand builds a Speaker around the given binary, e.g. "espeak-ng".
func NewCommand(binary string) *Command {
	return &Command{binary: binary}
}

func (c *Command) Speak(ctx context.Context, text, lang string) error {
	c.Cancel()

	cmd := exec.CommandContext(ctx, c.binary, "-v", lang, text)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.binary, err)
	}

	c.mu.Lock()
	c.cmd = cmd
	c.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		c.mu.Lock()
		if c.cmd == cmd {
			c.cmd = nil
		}
		c.mu.Unlock()
	}()
	return nil
}

func (c *Command) Cancel() {
	c.mu.Lock()
	cmd := c.cmd
	c.cmd = nil
	c.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

func (c *Command) Speaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cmd != nil
}

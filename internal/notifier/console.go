package notifier

import (
	"fmt"
	"io"
	"os"
)

// Console prints notifications to a writer instead of the tray app.
// Used by `habitsync watch --console` and in headless environments.
type Console struct {
	Out io.Writer
}

func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

func (c *Console) Notify(title, body string) error {
	_, err := fmt.Fprintf(c.Out, "🔔 %s: %s\n", title, body)
	return err
}

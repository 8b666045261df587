package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/yigit/mototransporte/internal/app/models"
)

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f interface{ Fd() uintptr }) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PromptConfirmer asks on the terminal. Without a terminal every prompt is
// declined.
type PromptConfirmer struct {
	In          io.ReadCloser
	Out         io.Writer
	Interactive bool
}

func (c PromptConfirmer) Confirm(_ context.Context, title, message string) (bool, error) {
	if !c.Interactive {
		fmt.Fprintf(c.Out, "%s\n%s\n(use --yes to confirm without a terminal)\n", title, message)
		return false, nil
	}

	fmt.Fprintln(c.Out, message)
	prompt := promptui.Prompt{
		Label:     title,
		IsConfirm: true,
		Stdin:     c.In,
		Stdout:    nopWriteCloser{c.Out},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return true, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Notifier prints notifications as single prefixed lines.
type Notifier struct {
	Out io.Writer
	mu  sync.Mutex
}

var notificationPrefix = map[models.NotificationKind]string{
	models.NotificationSuccess: "[ok]",
	models.NotificationInfo:    "[info]",
	models.NotificationWarning: "[warn]",
	models.NotificationError:   "[error]",
}

func (n *Notifier) Notify(kind models.NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	prefix, ok := notificationPrefix[kind]
	if !ok {
		prefix = "[" + string(kind) + "]"
	}
	fmt.Fprintf(n.Out, "%s %s\n", prefix, message)
}

// loading shows a spinner on out while fn runs, when out is a terminal.
func loading(out io.Writer, label string, fn func() error) error {
	f, ok := out.(*os.File)
	if !ok || !isTerminal(f) {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + label
	s.Start()
	defer s.Stop()
	return fn()
}

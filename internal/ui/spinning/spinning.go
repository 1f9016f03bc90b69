// Package spinning shows a spinning symbol followed by a status line while a program works, and
// handles interruptions restoring the terminal.
package spinning

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

var (
	ThemeASCII = []rune(`|/-\`)
	ThemeDots  = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

	// Theme used by New. It can be changed before calling New.
	Theme = ThemeASCII
)

// Spinner refreshes a status line on a separate goroutine until Done is called.
type Spinner struct {
	wg     sync.WaitGroup
	cancel func()
	status func() string
}

// SafeInterrupt captures SIGINT (Ctrl+C) and SIGTERM and calls onInterrupt.
// If the program hasn't exited after gracePeriod, the terminal is reset and the program exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Interrupted (%s), shutting down within %s", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Exitf("Grace period of %s expired, exiting.", gracePeriod)
	}()
}

// Reset the terminal: show the cursor and restore the default colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// New starts a Spinner that rewrites the current line every period with a spinning symbol and
// the output of status, which must be safe to call concurrently.
func New(ctx context.Context, period time.Duration, status func() string) *Spinner {
	s := &Spinner{status: status}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		fmt.Print("\033[?25l")       // Hide cursor.
		defer fmt.Print("\033[?25h") // Show cursor.
		for idx := 0; ; idx = (idx + 1) % len(Theme) {
			fmt.Printf("\r%c %s\033[0K", Theme[idx], s.status())
			select {
			case <-ctx.Done():
				fmt.Printf("\r  %s\033[0K\n", s.status())
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinner and prints the final status. It can be called more than once.
func (s *Spinner) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

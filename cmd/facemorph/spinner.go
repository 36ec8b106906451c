package main

import (
	"fmt"
	"math"
	"os"
	"time"
)

type spinner struct {
	stopChan chan struct{}
	done     chan struct{}
}

func newSpinner() *spinner {
	return &spinner{}
}

func (s *spinner) start(message string) {
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(os.Stderr, "\r")
					return
				default:
					fmt.Fprintf(os.Stderr, "\r%s \x1b[92m%c\x1b[39m", message, r)
					time.Sleep(100 * time.Millisecond)
				}
			}
		}
	}()
}

func (s *spinner) stop() {
	close(s.stopChan)
	<-s.done
}

// Human readable duration, down to milliseconds for short runs.
func formatTime(d time.Duration) string {
	if d.Seconds() < 1.0 {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(remainingSeconds))
	}
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dh:%dm:%ds", int64(d.Hours()), int64(remainingMinutes), int64(remainingSeconds))
}

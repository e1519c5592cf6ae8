package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// follow streams transform messages from path, one per line. Path may be
// a FIFO fed by another viewer's -publish. An empty path yields a nil
// channel, which never delivers.
//
// Opening a FIFO blocks until a writer appears, so the open happens on
// the reader goroutine and follow returns at once. Only a missing or
// unreadable path is reported synchronously.
func follow(ctx context.Context, path string, log *zap.Logger) (<-chan string, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open follow file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open follow file: %s is a directory", path)
	}

	out := make(chan string, 16)
	go func() {
		f, err := os.Open(path)
		if err != nil {
			log.Warn("follow stopped", zap.String("path", path), zap.Error(err))
			return
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			log.Warn("follow stopped", zap.String("path", path), zap.Error(err))
		}
	}()
	return out, nil
}

// publisher appends a message line each time the transform changes.
type publisher struct {
	w    *bufio.Writer
	f    *os.File
	last string
}

func newPublisher(path string) (*publisher, error) {
	if path == "" {
		return &publisher{}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open publish file: %w", err)
	}
	return &publisher{w: bufio.NewWriter(f), f: f}, nil
}

func (p *publisher) Publish(msg string) error {
	if p.w == nil || msg == p.last {
		return nil
	}
	p.last = msg
	if _, err := p.w.WriteString(msg + "\n"); err != nil {
		return err
	}
	return p.w.Flush()
}

func (p *publisher) Close() error {
	if p.f == nil {
		return nil
	}
	return p.f.Close()
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/mission"
	"golang.org/x/sync/errgroup"
)

// Run executes the extract command. Files are processed concurrently; each
// result prints as one JSON line in input order.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	opts := mission.Options{
		MaxIterations:  c.MaxIterations,
		RepairEnabled:  c.Repair,
		InferenceModel: c.Model,
	}

	type outcome struct {
		URL     string           `json:"url"`
		Session string           `json:"session"`
		Success bool             `json:"success"`
		Record  *showreel.Record `json:"record"`
	}
	outcomes := make([]*outcome, len(c.Files))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	var mu sync.Mutex
	for i, file := range c.Files {
		g.Go(func() error {
			markup, err := readPage(file)
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", file, err)
			}

			url := c.fileURL(i, file)
			result := deps.Runner.Extract(ctx, string(markup), url, opts)

			mu.Lock()
			outcomes[i] = &outcome{
				URL:     url,
				Session: result.SessionID,
				Success: result.Success,
				Record:  result.Record,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", showreel.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	failures := 0
	for _, o := range outcomes {
		if err := enc.Encode(o); err != nil {
			return err
		}
		if !o.Success {
			failures++
		}
	}

	if failures > 0 {
		return showreel.Errorf(showreel.EINTERNAL, "%d of %d pages did not produce an acceptable record", failures, len(c.Files))
	}
	return nil
}

// fileURL picks the URL for a file: the positional --url flag when given,
// otherwise a file URL so the domain lookup degrades cleanly.
func (c *ExtractCmd) fileURL(i int, file string) string {
	if i < len(c.URL) {
		return c.URL[i]
	}
	if file == "-" {
		return "stdin://"
	}
	return "file://" + file
}

// readPage reads one page's markup. "-" reads stdin.
func readPage(file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/showreel"
)

// Run executes the sessions command.
func (c *SessionsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}
	return c.list(deps)
}

// list prints matching sessions, newest first.
func (c *SessionsCmd) list(deps *Dependencies) error {
	filter := showreel.SessionFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}
	if c.Won {
		won := true
		filter.Success = &won
	} else if c.Failed {
		failed := false
		filter.Success = &failed
	}

	sessions, err := deps.Ledger.FindSessions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", showreel.ErrorMessage(err))
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions recorded. Use 'showreel extract' to create some.")
		return nil
	}

	for _, s := range sessions {
		status := "failed"
		if s.Success {
			status = "ok"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-6s  %s\n",
			s.ID, s.StartedAt.Format(time.RFC3339), status, s.URL)
	}
	return nil
}

// show prints one session with its full iteration history.
func (c *SessionsCmd) show(deps *Dependencies) error {
	session, err := deps.Ledger.FindSessionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", showreel.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Session:  %s\n", session.ID)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", session.URL)
	fmt.Fprintf(deps.Stdout, "Domain:   %s\n", session.Domain)
	fmt.Fprintf(deps.Stdout, "Started:  %s\n", session.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Success:  %t\n", session.Success)

	for _, it := range session.Iterations {
		status := "failed"
		if it.Success {
			status = "ok"
		}
		fmt.Fprintf(deps.Stdout, "  #%d  %-6s  strategies=%s  companies=%d credits=%d",
			it.Index, status, strings.Join(it.StrategiesTried, ","), it.ExtractedCompanies, it.ExtractedCredits)
		if it.Error != "" {
			fmt.Fprintf(deps.Stdout, "  error=%q", it.Error)
		}
		if it.ArtifactRef != "" {
			fmt.Fprintf(deps.Stdout, "  artifact=%s", it.ArtifactRef)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/showreel"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	if c.Promote != "" {
		if c.Domain == "" {
			return showreel.Errorf(showreel.EINVALID, "a domain is required to promote a strategy")
		}
		if err := deps.Patterns.Promote(c.Domain, c.Promote); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", showreel.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Promoted %s for %s\n", c.Promote, c.Domain)
		return nil
	}

	if c.Domain != "" {
		return c.show(deps)
	}

	domains := deps.Patterns.Domains()
	if len(domains) == 0 {
		fmt.Fprintln(deps.Stdout, "No domains configured.")
		return nil
	}
	for _, domain := range domains {
		config, _ := deps.Patterns.Domain(domain)
		fmt.Fprintf(deps.Stdout, "%s  patterns=%d  methods=%s\n",
			domain, len(config.Patterns), strings.Join(config.Methods, ","))
	}
	return nil
}

// show prints one domain's patterns and method order.
func (c *PatternsCmd) show(deps *Dependencies) error {
	config, ok := deps.Patterns.Domain(c.Domain)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: domain %q not configured. Use 'showreel patterns' to list domains.\n", c.Domain)
		return showreel.Errorf(showreel.ENOTFOUND, "domain %q not configured", c.Domain)
	}

	fmt.Fprintf(deps.Stdout, "Domain:   %s\n", c.Domain)
	fmt.Fprintf(deps.Stdout, "Methods:  %s\n", strings.Join(config.Methods, ", "))

	names := make([]string, 0, len(config.Patterns))
	for name := range config.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := config.Patterns[name]
		fmt.Fprintf(deps.Stdout, "  %-12s %-9s %s", name, p.Kind, p.Expression)
		if p.Template != "" {
			fmt.Fprintf(deps.Stdout, "  template=%s", p.Template)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

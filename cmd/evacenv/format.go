package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/caesium-lab/evacenv/internal/server"
	"github.com/caesium-lab/evacenv/internal/snapshot"
	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	printResults(w, "ERRORS", r.Errors, true)
	printResults(w, "WARNINGS", r.Warnings, true)
	printResults(w, "INFO", r.Info, false)

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResults(w io.Writer, title string, results []validation.Result, detailed bool) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(results))
	for _, res := range results {
		fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
		if !detailed {
			continue
		}
		if res.Path != "" {
			if res.ActualValue != nil {
				fmt.Fprintf(w, "    -> %s = %v\n", res.Path, res.ActualValue)
			} else {
				fmt.Fprintf(w, "    -> %s\n", res.Path)
			}
		}
		if res.Expected != "" {
			fmt.Fprintf(w, "    expected: %s\n", res.Expected)
		}
		for _, s := range res.Suggestions {
			fmt.Fprintf(w, "    * %s\n", s)
		}
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, env *environment.Environment) {
	reach := env.Reachability()

	fmt.Fprintln(w, "=== Domains ===")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tSIZE\tOBSTACLES\tACCESSES\tHOPS TO EXIT")
	for _, d := range env.Domains() {
		hops := "-"
		if h, ok := reach[d.ID()]; ok {
			hops = fmt.Sprintf("%d", h)
		}
		fmt.Fprintf(tw, "  %d\t%s\t%gx%g\t%d\t%d\t%s\n",
			d.ID(), d.Name(), d.Width(), d.Height(), len(d.Obstacles()), len(d.Accesses()), hops)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Gateways ===")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tDOMAIN1\tDOMAIN2\tEXIT")
	for _, g := range env.Gateways() {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%d\t%t\n", g.ID, g.Name, g.Domain1, g.Domain2, g.IsExit())
	}
	tw.Flush()
}

func printProbe(w io.Writer, d *environment.Domain, p server.ProbeResult) {
	fmt.Fprintf(w, "Domain %d (%s) at (%g, %g)\n", d.ID(), d.Name(), p.X, p.Y)
	fmt.Fprintf(w, "  inside:    %t\n", p.Inside)
	fmt.Fprintf(w, "  walkable:  %t\n", p.Walkable)
	fmt.Fprintf(w, "  obstacles: %d\n", len(p.Obstacles))
	for _, name := range p.Obstacles {
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "    - %s\n", name)
	}
	fmt.Fprintf(w, "  accesses:  %v\n", p.Accesses)
}

func printSnapshots(w io.Writer, infos []snapshot.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "no snapshots")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES\tMODIFIED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Key, info.Size, info.LastModified.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
}

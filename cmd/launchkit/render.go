package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/poiesic/launchkit/consolidate"
	"github.com/poiesic/launchkit/core"
	"github.com/poiesic/launchkit/storage"
)

// renderList prints entries as a table. The FLAGS column shows * for
// favorites, h for hidden and ! for challenged applications.
func renderList(w io.Writer, entries []core.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no applications)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FLAGS\tNAME\tIDENTIFIER")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", entryFlags(e), e.App.DisplayName, e.App.Identifier)
	}
	return tw.Flush()
}

func entryFlags(e core.Entry) string {
	flags := []byte("---")
	if e.Favorite {
		flags[0] = '*'
	}
	if e.Hidden {
		flags[1] = 'h'
	}
	if e.Challenged {
		flags[2] = '!'
	}
	return string(flags)
}

func renderIdentifiers(w io.Writer, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	for i, id := range ids {
		fmt.Fprintf(w, "%d\t%s\n", i, id)
	}
}

func renderSettings(w io.Writer, entries []storage.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tVALUE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Value.Kind(), e.Value)
	}
	return tw.Flush()
}

func renderReport(w io.Writer, report *consolidate.Report) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if report.Skipped {
		yellow.Fprintln(w, "Preferences already consolidated, nothing to do.")
		return
	}
	green.Fprintf(w, "Consolidated %d keys.\n", report.Copied)
	fmt.Fprintf(w, "  migrated: %s\n", joinOrNone(report.Migrated))
	fmt.Fprintf(w, "  deleted:  %s\n", joinOrNone(report.Deleted))
	fmt.Fprintf(w, "  absent:   %s\n", joinOrNone(report.Absent))
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"gameid/internal/identify"
	"gameid/internal/reconcile"
)

// stdoutIsTTY decides the default output mode: tables for humans, delimited
// lines for pipes.
func stdoutIsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outcomePairs flattens one outcome into field/value rows for the detail
// table.
func outcomePairs(path string, out *identify.Outcome) [][2]string {
	id := out.Identifier
	pairs := [][2]string{
		{"Path", path},
		{"Console", string(id.Platform)},
		{"Serial", id.Serial},
		{"Raw serial", id.RawSerial},
		{"Status", string(out.Result.Status)},
	}
	if id.Layout != "" {
		pairs = append(pairs, [2]string{"Layout", id.Layout})
	}
	if meta := out.Result.Metadata; meta != nil {
		add := func(name, value string) {
			if value != "" {
				pairs = append(pairs, [2]string{name, value})
			}
		}
		add("Title", meta.Title)
		add("Developer", meta.Developer)
		add("Publisher", meta.Publisher)
		add("Rating", meta.Rating)
		add("Region", meta.Region)
		add("Release date", meta.ReleaseDate)
		add("Version", meta.Version)
		add("Canonical ID", meta.CanonicalID)
	} else if id.Title != "" {
		pairs = append(pairs, [2]string{"Header title", id.Title})
	}

	if len(id.Fields) > 0 {
		keys := make([]string, 0, len(id.Fields))
		for k := range id.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pairs = append(pairs, [2]string{"header." + k, id.Fields[k]})
		}
	}
	return pairs
}

func printOutcomeTable(w io.Writer, path string, out *identify.Outcome) {
	fmt.Fprintln(w, renderKV(outcomePairs(path, out)))
	if out.Result.Status == reconcile.StatusAmbiguous {
		rows := make([][]string, 0, len(out.Result.Candidates))
		for _, c := range out.Result.Candidates {
			rows = append(rows, []string{c.Title, c.Region, c.ReleaseDate, c.Publisher})
		}
		fmt.Fprintln(w, "Candidates:")
		fmt.Fprintln(w, renderTable([]string{"Title", "Region", "Released", "Publisher"}, rows, nil))
	}
}

// printOutcomePlain writes one delimited line per outcome:
// path, console, serial, status, title.
func printOutcomePlain(w io.Writer, path string, out *identify.Outcome, delimiter string) {
	title := ""
	if out.Result.Metadata != nil {
		title = out.Result.Metadata.Title
	} else if out.Identifier.Title != "" {
		title = out.Identifier.Title
	}
	fields := []string{
		path,
		string(out.Identifier.Platform),
		out.Identifier.Serial,
		string(out.Result.Status),
		title,
	}
	fmt.Fprintln(w, strings.Join(fields, delimiter))
}

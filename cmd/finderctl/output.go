package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/finder/backend/internal/providers/filesystem"
)

type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	switch format {
	case "table", "json", "yaml":
		return &printer{format: format, w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// value prints v as json or yaml; table falls back to yaml
func (p *printer) value(v interface{}) error {
	var (
		data []byte
		err  error
	)
	if p.format == "json" {
		data, err = sonic.MarshalIndent(v, "", "  ")
	} else {
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return err
	}
	if p.format == "json" {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	return err
}

func (p *printer) path(path string) error {
	if p.format != "table" {
		return p.value(map[string]string{"path": path})
	}
	_, err := fmt.Fprintln(p.w, path)
	return err
}

func (p *printer) listing(l *filesystem.DirectoryListing) error {
	if p.format != "table" {
		return p.value(l)
	}
	fmt.Fprintln(p.w, l.CurrentPath)
	if err := p.entries(l.Entries); err != nil {
		return err
	}
	if l.Skipped > 0 {
		fmt.Fprintf(p.w, "(%d entries skipped)\n", l.Skipped)
	}
	return nil
}

func (p *printer) search(r *filesystem.SearchResult) error {
	if p.format != "table" {
		return p.value(r)
	}
	if err := p.entries(r.Entries); err != nil {
		return err
	}
	if r.Truncated {
		fmt.Fprintf(p.w, "(results truncated at %d)\n", filesystem.MaxSearchResults)
	}
	return nil
}

func (p *printer) entry(e *filesystem.FileEntry) error {
	if p.format != "table" {
		return p.value(e)
	}
	return p.entries([]filesystem.FileEntry{*e})
}

func (p *printer) entries(entries []filesystem.FileEntry) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED\tPATH")
	for _, e := range entries {
		size := "-"
		if e.Size != nil {
			size = humanSize(*e.Size)
		}
		modified := "-"
		if e.Modified != nil {
			modified = *e.Modified
		}
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, size, modified, e.Path)
	}
	return tw.Flush()
}

func (p *printer) preview(fp *filesystem.FilePreview) error {
	if p.format != "table" || fp.Encoding != filesystem.EncodingText {
		if p.format == "table" {
			fmt.Fprintf(p.w, "%s preview, %s, %s encoded\n", fp.FileType, humanSize(fp.Size), fp.Encoding)
		}
		return p.value(fp)
	}
	_, err := io.WriteString(p.w, fp.Content)
	return err
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

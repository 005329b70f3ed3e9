package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableSpec describes one rendered table. Rows shorter than Headers are
// padded; extra cells are dropped.
type tableSpec struct {
	Title   string
	Headers []string
	Rows    [][]string
	Aligns  []columnAlignment
	// Color bolds the header and title; set only for terminals.
	Color bool
}

func (s tableSpec) render() string {
	columns := len(s.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	if s.Color {
		style.Color.Header = text.Colors{text.Bold}
		style.Title.Colors = text.Colors{text.Bold}
	}
	tw.SetStyle(style)
	if s.Title != "" {
		tw.SetTitle(s.Title)
	}

	tw.AppendHeader(s.row(s.Headers, columns))
	for _, r := range s.Rows {
		tw.AppendRow(s.row(r, columns))
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		align := text.AlignLeft
		if i < len(s.Aligns) && s.Aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func (s tableSpec) row(cells []string, columns int) table.Row {
	out := make(table.Row, columns)
	for i := range out {
		if i < len(cells) {
			out[i] = cells[i]
		} else {
			out[i] = ""
		}
	}
	return out
}

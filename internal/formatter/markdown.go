// Package formatter renders article catalogs as aligned markdown tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"articlegen/internal/models"
)

var catalogHeader = []string{"Published", "Edited", "Directory", "Title"}

// ArticleTable lists articles, in the given order, as a markdown table whose
// columns are padded by display width so CJK titles line up in a terminal.
func ArticleTable(articles []*models.Article) string {
	rows := make([][]string, 0, len(articles)+1)
	rows = append(rows, catalogHeader)

	for _, a := range articles {
		rows = append(rows, []string{a.PublishedDate, a.EditedDate, a.Directory, cell(a.Title)})
	}

	return strings.Join(alignTable(rows), "\n") + "\n"
}

// cell makes a value safe to place inside a table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	return strings.ReplaceAll(s, "|", `\|`)
}

// alignTable pads every column to its widest cell and inserts the separator
// row after the header.
func alignTable(rows [][]string) []string {
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i, c := range row {
			if width := runewidth.StringWidth(c); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Separator needs at least "---"
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(rows)+1)

	for i, row := range rows {
		result = append(result, formatRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j := range sep {
				sep[j] = strings.Repeat("-", colWidths[j])
			}

			result = append(result, formatRow(sep, colWidths))
		}
	}

	return result
}

func formatRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(content, width))
		sb.WriteString(" |")
	}

	return sb.String()
}

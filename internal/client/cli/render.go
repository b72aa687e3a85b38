package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// markdownTheme is the glamour style used on terminals.
const markdownTheme = "auto"

// renderMarkdown renders markdown with glamour when w is a terminal and
// returns it unchanged otherwise (pipes, redirects, tests).
func renderMarkdown(w io.Writer, markdown string) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return markdown
	}
	rendered, err := glamour.Render(markdown, markdownTheme)
	if err != nil {
		return markdown
	}
	return rendered
}

func (a *App) printMarkdown(markdown string) {
	fmt.Fprint(a.out, renderMarkdown(a.out, markdown))
}

// mdTable builds a Markdown table. Pipes in cells are escaped.
func mdTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatMoney(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Package report renders inventory records for the terminal.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/mattn/go-isatty"
)

// ANSI color codes for terminal output.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// NotFoundMessage is printed when a search has no results
const NotFoundMessage = "Item not found in inventory."

const (
	tableRule   = "+----------------------+----------+"
	tableHeader = "| Item Particulars    | Quantity  |"
)

// Options controls rendering
type Options struct {
	Color bool
}

// Table writes records as a boxed two-column table, or NotFoundMessage when empty.
func Table(w io.Writer, records []inventory.Record, opts Options) error {
	p := &printer{w: w}

	if len(records) == 0 {
		p.line(NotFoundMessage)
		return p.err
	}

	if opts.Color {
		p.raw(ColorCyan)
	}
	p.line(tableRule)
	p.line(tableHeader)
	p.line(tableRule)
	for _, rec := range records {
		p.line(fmt.Sprintf("| %-20s | %8s |", rec.Particulars, rec.Quantity))
	}
	p.line(tableRule)
	if opts.Color {
		p.raw(ColorReset)
	}
	return p.err
}

// Paint wraps s in color when enabled
func Paint(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + ColorReset
}

// ResolveColor decides whether to color output.
// mode is "auto", "always" or "never"; auto colors only terminals.
func ResolveColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) line(s string) {
	p.raw(s + "\n")
}

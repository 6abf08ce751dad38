package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dsjohal14/stockroom/internal/report"
	"github.com/spf13/cobra"
)

const menuRule = "------------------------------------------------------------------------"

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive main menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := &menu{app: a, in: bufio.NewReader(cmd.InOrStdin())}
			return m.run(cmd.Context())
		},
	}
}

type menu struct {
	*app
	in *bufio.Reader
}

// run shows the main menu until E is chosen or input ends
func (m *menu) run(ctx context.Context) error {
	for {
		m.printMain()

		choice, err := m.readLine()
		if err != nil {
			return eofOK(err)
		}

		switch strings.ToUpper(strings.TrimSpace(choice)) {
		case "M":
			err = m.manage(ctx)
		case "S":
			var term string
			term, err = m.prompt("Enter the item you want to search: ")
			if err == nil {
				err = m.search(ctx, term)
			}
		case "V":
			err = m.list(ctx)
		case "P", "O":
			m.say("Not implemented yet.", report.ColorYellow)
		case "E":
			return nil
		default:
			m.say("Enter Right Option", report.ColorRed)
		}

		if err != nil {
			var reported *reportedError
			if errors.As(err, &reported) {
				continue
			}
			return eofOK(err)
		}
	}
}

func (m *menu) printMain() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, report.Paint("\t\t\t MAIN MENU", report.ColorGreen, m.color))
	fmt.Fprintln(m.out, menuRule)
	fmt.Fprintln(m.out, "1. \t\t\tMANAGE INVENTORY\t[M]")
	fmt.Fprintln(m.out, "2. \t\t\tPROCESS ORDERS\t\t[P]")
	fmt.Fprintln(m.out, "3. \t\t\tOPTIMISE ROUTES\t\t[O]")
	fmt.Fprintln(m.out, "4. \t\t\tSEARCH INVENTORY\t[S]")
	fmt.Fprintln(m.out, "5. \t\t\tVIEW REPORTS\t\t[V]")
	fmt.Fprintln(m.out, report.Paint("\t\t\t    EXIT\t\t[E]", report.ColorRed, m.color))
	fmt.Fprintln(m.out, menuRule)
	fmt.Fprintln(m.out, report.Paint("CHOOSE A SUITABLE OPTION", report.ColorGreen, m.color))
}

func (m *menu) manage(ctx context.Context) error {
	fmt.Fprintln(m.out, report.Paint("1. Add Item", report.ColorGreen, m.color))
	fmt.Fprintln(m.out, report.Paint("2. Delete Item", report.ColorRed, m.color))
	fmt.Fprintln(m.out, report.Paint("3. Upgrade Item", report.ColorYellow, m.color))

	option, err := m.prompt("Enter option: ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(option) {
	case "1":
		particulars, err := m.prompt("Enter item particulars: ")
		if err != nil {
			return err
		}
		quantity, err := m.prompt("Enter item quantity: ")
		if err != nil {
			return err
		}
		return m.add(ctx, particulars, quantity)
	case "2":
		particulars, err := m.prompt("Enter item particulars to delete: ")
		if err != nil {
			return err
		}
		return m.delete(ctx, particulars)
	case "3":
		particulars, err := m.prompt("Enter item particulars to upgrade: ")
		if err != nil {
			return err
		}
		quantity, err := m.prompt("Enter new quantity: ")
		if err != nil {
			return err
		}
		return m.update(ctx, particulars, quantity)
	default:
		m.say("Invalid option.", report.ColorRed)
		return nil
	}
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	return m.readLine()
}

// readLine returns the next input line without its terminator.
// A final line without a newline is returned before io.EOF.
func (m *menu) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func eofOK(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

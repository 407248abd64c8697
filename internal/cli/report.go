package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
)

type reportCmd struct {
	env    *Env
	filter string
	raw    bool
	now    func() time.Time
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print a summary of stock and sales" }
func (*reportCmd) Usage() string {
	return `stockbook report [-q <text>] [-raw]

  Prints both lists and their totals as a markdown report, rendered for the
  terminal unless -raw is given.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "q", "", "search text matched against product names")
	f.BoolVar(&c.raw, "raw", false, "print the markdown source")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	s.Filter = c.filter

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	md := buildReport(s, c.env.formatter(), now())
	if c.raw {
		fmt.Fprint(c.env.Out, md)
		return subcommands.ExitSuccess
	}

	out, err := renderMarkdown(md)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprint(c.env.Out, out)
	return subcommands.ExitSuccess
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(md)
}

func buildReport(s *ledger.Session, fm *Formatter, now time.Time) string {
	sum := s.Summary()

	var sb strings.Builder
	sb.WriteString("# Stock report\n\n")
	sb.WriteString(fmt.Sprintf("Generated on %s.\n\n", fm.Time(now)))
	if s.Filter != "" {
		sb.WriteString(fmt.Sprintf("Only products whose name contains \"%s\".\n\n", cell(s.Filter)))
	}

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| | Products | Cost | Revenue | Profit |\n")
	sb.WriteString("|---|---:|---:|---:|---:|\n")
	sb.WriteString(fmt.Sprintf("| In stock | %d | %s | %s | %s |\n", sum.ActiveCount,
		fm.Money(sum.Active.Cost), fm.Money(sum.Active.Revenue), fm.Money(sum.Active.Profit)))
	sb.WriteString(fmt.Sprintf("| Sold | %d | %s | %s | %s |\n\n", sum.SoldCount,
		fm.Money(sum.Sold.Cost), fm.Money(sum.Sold.Revenue), fm.Money(sum.Sold.Profit)))

	sb.WriteString("## In stock\n\n")
	if products := s.VisibleProducts(); len(products) > 0 {
		sb.WriteString("| Name | Qty | Cost | Sell | Margin | Line profit | Created |\n")
		sb.WriteString("|---|---:|---:|---:|---:|---:|---|\n")
		for _, p := range products {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				cell(p.Text), p.Quantity, fm.Money(p.CostPrice.Decimal()), fm.Money(p.SellPrice.Decimal()),
				fm.Money(p.UnitMargin()), fm.Money(p.LineProfit()), fm.Time(p.CreatedAt)))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No products.\n\n")
	}

	sb.WriteString("## Sold\n\n")
	if sold := s.VisibleSold(); len(sold) > 0 {
		sb.WriteString("| Name | Qty | Revenue | Profit | Sold |\n")
		sb.WriteString("|---|---:|---:|---:|---|\n")
		for _, p := range sold {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(p.Text), p.Quantity, fm.Money(p.LineRevenue()), fm.Money(p.LineProfit()), fm.Time(p.SoldAt)))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No sold products.\n\n")
	}

	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"\r", " ",
	"\n", " ",
)

// cell escapes user text so it stays literal inside a line or table row.
func cell(s string) string {
	return markdownEscaper.Replace(s)
}

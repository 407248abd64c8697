package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
)

type listCmd struct {
	env    *Env
	filter string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "show registered products with their totals" }
func (*listCmd) Usage() string {
	return `stockbook list [-q <text>]

  Lists products, newest first. -q keeps only names containing the text,
  ignoring case. Totals cover the listed products.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "q", "", "search text matched against product names")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	s.Filter = c.filter

	items := s.VisibleProducts()
	fm := c.env.formatter()
	if len(items) == 0 {
		fmt.Fprintln(c.env.Out, "No products.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.env.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tCOST\tLINE COST\tSELL\tMARGIN\tLINE REVENUE\tLINE PROFIT\tCREATED")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Text, p.Quantity,
			fm.Money(p.CostPrice.Decimal()), fm.Money(p.LineCost()),
			fm.Money(p.SellPrice.Decimal()), fm.Money(p.UnitMargin()),
			fm.Money(p.LineRevenue()), fm.Money(p.LineProfit()),
			fm.Time(p.CreatedAt))
	}
	w.Flush()

	writeTotals(c.env.Out, fm, ledger.ComputeTotals(items))
	return subcommands.ExitSuccess
}

type soldCmd struct {
	env    *Env
	filter string
}

func (*soldCmd) Name() string     { return "sold" }
func (*soldCmd) Synopsis() string { return "show sold products with their totals" }
func (*soldCmd) Usage() string {
	return `stockbook sold [-q <text>]

  Lists sold products, most recent sale first.
`
}

func (c *soldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "q", "", "search text matched against product names")
}

func (c *soldCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	s.Filter = c.filter

	items := s.VisibleSold()
	fm := c.env.formatter()
	if len(items) == 0 {
		fmt.Fprintln(c.env.Out, "No sold products.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.env.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tCOST\tSELL\tLINE REVENUE\tLINE PROFIT\tSOLD")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Text, p.Quantity,
			fm.Money(p.CostPrice.Decimal()), fm.Money(p.SellPrice.Decimal()),
			fm.Money(p.LineRevenue()), fm.Money(p.LineProfit()),
			fm.Time(p.SoldAt))
	}
	w.Flush()

	writeTotals(c.env.Out, fm, ledger.ComputeTotals(items))
	return subcommands.ExitSuccess
}

func writeTotals(w io.Writer, fm *Formatter, t ledger.Totals) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total cost:    %s\n", fm.Money(t.Cost))
	fmt.Fprintf(w, "Total revenue: %s\n", fm.Money(t.Revenue))
	fmt.Fprintf(w, "Total profit:  %s\n", fm.Profit(t.Profit))
}

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
	"github.com/rogerio-castellano/stockbook/internal/models"
)

// fail prints err and maps it to an exit status. Bad input is a usage error.
func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Err, "Error:", err)
	if errors.Is(err, ledger.ErrMissingFields) || errors.Is(err, ledger.ErrNotANumber) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

func draftFlags(f *flag.FlagSet, d *models.Draft) {
	f.StringVar(&d.Text, "name", "", "product name")
	f.StringVar(&d.Quantity, "qty", "", "quantity, a comma is read as the decimal separator")
	f.StringVar(&d.CostPrice, "cost", "", "unit cost price")
	f.StringVar(&d.SellPrice, "sell", "", "unit sell price")
	f.StringVar(&d.Description, "desc", "", "free text description")
}

type addCmd struct {
	env   *Env
	draft models.Draft
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "register a new product" }
func (*addCmd) Usage() string {
	return `stockbook add -name <name> -qty <n> -cost <price> -sell <price> [-desc <text>]

  Registers a product. Name, quantity, cost and sell price are required.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { draftFlags(f, &c.draft) }

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	s.CancelEdit()
	s.Draft = c.draft
	p, err := s.Submit(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "Added %s (%s)\n", p.Text, p.ID)
	return subcommands.ExitSuccess
}

type editCmd struct {
	env   *Env
	id    string
	draft models.Draft
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the fields of a registered product" }
func (*editCmd) Usage() string {
	return `stockbook edit -id <id> [-name <name>] [-qty <n>] [-cost <price>] [-sell <price>] [-desc <text>]

  Only the flags given are changed; the creation date is kept.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the product to edit")
	draftFlags(f, &c.draft)
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" && f.NArg() > 0 {
		c.id = f.Arg(0)
	}
	if c.id == "" {
		fmt.Fprintln(c.env.Err, "Error: missing product id")
		return subcommands.ExitUsageError
	}

	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	if err := s.BeginEdit(c.id); err != nil {
		return c.env.fail(fmt.Errorf("%s: %w", c.id, err))
	}

	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			s.Draft.Text = c.draft.Text
		case "qty":
			s.Draft.Quantity = c.draft.Quantity
		case "cost":
			s.Draft.CostPrice = c.draft.CostPrice
		case "sell":
			s.Draft.SellPrice = c.draft.SellPrice
		case "desc":
			s.Draft.Description = c.draft.Description
		}
	})

	p, err := s.Submit(ctx)
	if err != nil {
		s.CancelEdit()
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "Updated %s (%s)\n", p.Text, p.ID)
	return subcommands.ExitSuccess
}

type sellCmd struct {
	env *Env
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "move products to the sold list" }
func (*sellCmd) Usage() string {
	return `stockbook sell <id>...

  Moves each product to the sold list, stamped with the current time.
`
}

func (*sellCmd) SetFlags(*flag.FlagSet) {}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(c.env.Err, "Error: no product id given")
		return subcommands.ExitUsageError
	}

	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		sold, moved, err := s.MoveToSold(ctx, id)
		switch {
		case err != nil:
			return c.env.fail(err)
		case !moved:
			fmt.Fprintf(c.env.Err, "No product with id %s\n", id)
			status = subcommands.ExitFailure
		default:
			fmt.Fprintf(c.env.Out, "Sold %s for %s\n", sold.Text, c.env.formatter().Money(sold.LineRevenue()))
		}
	}
	return status
}

type deleteCmd struct {
	env  *Env
	sold bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove products or sold records" }
func (*deleteCmd) Usage() string {
	return `stockbook delete [-sold] <id>...

  Removes products from the active list, or from the sold list with -sold.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.sold, "sold", false, "delete from the sold list")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(c.env.Err, "Error: no product id given")
		return subcommands.ExitUsageError
	}

	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		var removed bool
		if c.sold {
			removed, err = s.Sold.Delete(ctx, id)
		} else {
			removed, err = s.Delete(ctx, id)
		}
		if err != nil {
			return c.env.fail(err)
		}
		if !removed {
			fmt.Fprintf(c.env.Err, "No product with id %s\n", id)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(c.env.Out, "Deleted %s\n", id)
	}
	return status
}

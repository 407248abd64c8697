package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/subcommands"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
	"github.com/rogerio-castellano/stockbook/internal/models"
)

const (
	importAppend = "append"
	importSkip   = "skip"
	importUpdate = "update"
)

// headerAliases maps normalized CSV header names to draft fields.
var headerAliases = map[string]string{
	"name":        "text",
	"text":        "text",
	"product":     "text",
	"quantity":    "quantity",
	"qty":         "quantity",
	"costprice":   "costPrice",
	"cost":        "costPrice",
	"sellprice":   "sellPrice",
	"sell":        "sellPrice",
	"saleprice":   "sellPrice",
	"price":       "sellPrice",
	"description": "description",
	"desc":        "description",
}

var requiredColumns = []string{"text", "quantity", "costPrice", "sellPrice"}

type csvRow struct {
	Line  int
	Draft models.Draft
}

// ImportResult counts the rows written and describes the ones that were not.
type ImportResult struct {
	Imported int
	Errors   []string
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(h)
}

func parseCSV(r io.Reader, delim rune) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := map[string]int{}
	for i, h := range headers {
		if field, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, seen := index[field]; !seen {
				index[field] = i
			}
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV header is missing columns: %s", strings.Join(missing, ", "))
	}

	get := func(record []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, csvRow{
			Line: line,
			Draft: models.Draft{
				Text:        get(record, "text"),
				Quantity:    get(record, "quantity"),
				CostPrice:   get(record, "costPrice"),
				SellPrice:   get(record, "sellPrice"),
				Description: get(record, "description"),
			},
		})
	}
	return rows, nil
}

// importRows applies rows to the product ledger. Rows that fail validation or
// clash with an existing name are reported and skipped; a persistence error
// stops the import.
func importRows(ctx context.Context, products *ledger.ProductLedger, rows []csvRow, mode string) (ImportResult, error) {
	var res ImportResult
	for _, row := range rows {
		existing, found := products.FindByText(row.Draft.Text)
		var err error
		switch {
		case found && mode == importSkip:
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: product '%s' already exists", row.Line, row.Draft.Text))
			continue
		case found && mode == importUpdate:
			if row.Draft.Description == "" {
				row.Draft.Description = existing.Description
			}
			_, err = products.Update(ctx, existing.ID, row.Draft)
		default:
			_, err = products.Create(ctx, row.Draft)
		}

		if errors.Is(err, ledger.ErrPersistence) {
			return res, err
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

type importCmd struct {
	env   *Env
	mode  string
	delim string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "register products from a CSV file" }
func (*importCmd) Usage() string {
	return `stockbook import [-mode append|skip|update] [-delim ;] <file.csv>

  The header row names the columns: name, quantity, costPrice, sellPrice and
  an optional description. With skip or update, a row whose name matches an
  existing product is skipped or overwrites it. Use "-" to read stdin.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", importAppend, "what to do with names already registered: append, skip or update")
	f.StringVar(&c.delim, "delim", ",", "field delimiter")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode := strings.ToLower(c.mode)
	if mode != importAppend && mode != importSkip && mode != importUpdate {
		fmt.Fprintf(c.env.Err, "Error: unknown import mode %q\n", c.mode)
		return subcommands.ExitUsageError
	}
	delim, size := utf8.DecodeRuneInString(c.delim)
	if size == 0 || size != len(c.delim) {
		fmt.Fprintf(c.env.Err, "Error: delimiter must be a single character, got %q\n", c.delim)
		return subcommands.ExitUsageError
	}
	if f.NArg() != 1 {
		fmt.Fprintln(c.env.Err, "Error: expected exactly one CSV file")
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return c.env.fail(err)
		}
		defer file.Close()
		in = file
	}

	rows, err := parseCSV(in, delim)
	if err != nil {
		return c.env.fail(err)
	}

	s, err := c.env.Session(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	res, err := importRows(ctx, s.Products, rows, mode)
	fmt.Fprintf(c.env.Out, "Imported %d of %d rows\n", res.Imported, len(rows))
	for _, msg := range res.Errors {
		fmt.Fprintln(c.env.Err, msg)
	}
	if err != nil {
		return c.env.fail(err)
	}
	if len(res.Errors) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
	"github.com/rogerio-castellano/stockbook/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseCSV(t *testing.T) {
	in := "\ufeffName, Quantity ,cost_price,Sell Price,extra\n" +
		"Caneta,10,2.50,5,x\n" +
		"\n" +
		"Caderno,3,12,20\n"

	rows, err := parseCSV(strings.NewReader(in), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, models.Draft{Text: "Caneta", Quantity: "10", CostPrice: "2.50", SellPrice: "5"}, rows[0].Draft)
	assert.Equal(t, "Caderno", rows[1].Draft.Text)
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "", rows[1].Draft.Description)
}

func TestParseCSV_Semicolons(t *testing.T) {
	in := "product;qty;cost;sell;description\nLápis;5;0,75;1,50;HB\n"

	rows, err := parseCSV(strings.NewReader(in), ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Draft{Text: "Lápis", Quantity: "5", CostPrice: "0,75", SellPrice: "1,50", Description: "HB"}, rows[0].Draft)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	_, err := parseCSV(strings.NewReader("name,quantity\nA,1\n"), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "costPrice, sellPrice")

	_, err = parseCSV(strings.NewReader(""), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CSV header")
}

func TestImport_Append(t *testing.T) {
	te := newTestEnv(t)
	addWidget(t, te)
	path := writeCSV(t, "name,quantity,cost,sell\nWidget,1,1,2\nBad,abc,1,2\nCaneta,10,\"2,50\",5\n")

	status := run(t, &importCmd{env: te.Env}, path)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, te.out.String(), "Imported 2 of 3 rows")
	assert.Contains(t, te.errOut.String(), "row 3: ")
	assert.Contains(t, te.errOut.String(), "valid numbers")

	s := te.session(t)
	assert.Equal(t, 3, s.Products.Len())
	p, ok := s.Products.FindByText("caneta")
	require.True(t, ok)
	assert.Equal(t, "2.50", p.CostPrice.String())
}

func TestImport_Skip(t *testing.T) {
	te := newTestEnv(t)
	addWidget(t, te)
	path := writeCSV(t, "name,quantity,cost,sell\n widget ,1,1,2\nGadget,2,10,15\n")

	status := run(t, &importCmd{env: te.Env}, "-mode", "skip", path)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, te.errOut.String(), "row 2: product 'widget' already exists")
	assert.Equal(t, 2, te.session(t).Products.Len())
}

func TestImport_Update(t *testing.T) {
	te := newTestEnv(t)
	require.Equal(t, subcommands.ExitSuccess,
		run(t, &addCmd{env: te.Env}, "-name", "Widget", "-qty", "5", "-cost", "5", "-sell", "10", "-desc", "blue"))
	te.reset()
	path := writeCSV(t, "name;quantity;cost;sell\nWIDGET;20;6;11\n")

	status := run(t, &importCmd{env: te.Env}, "-mode", "UPDATE", "-delim", ";", path)
	require.Equal(t, subcommands.ExitSuccess, status, te.errOut.String())
	assert.Contains(t, te.out.String(), "Imported 1 of 1 rows")

	s := te.session(t)
	require.Equal(t, 1, s.Products.Len())
	p, _ := s.Products.Get("p-1")
	assert.Equal(t, "WIDGET", p.Text)
	assert.Equal(t, "20", p.Quantity.String())
	assert.Equal(t, "blue", p.Description)
	require.NotNil(t, p.UpdatedAt)
}

func TestImport_UsageErrors(t *testing.T) {
	te := newTestEnv(t)
	path := writeCSV(t, "name,quantity,cost,sell\n")

	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{env: te.Env}, "-mode", "merge", path))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{env: te.Env}, "-delim", ";;", path))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{env: te.Env}))
	assert.Equal(t, subcommands.ExitFailure, run(t, &importCmd{env: te.Env}, filepath.Join(t.TempDir(), "missing.csv")))
}

func TestImportRows_StopsOnPersistenceError(t *testing.T) {
	te := newTestEnv(t)
	s := te.session(t)
	te.store.FailSaves(ledger.ProductsKey, errors.New("disk full"))

	rows := []csvRow{
		{Line: 2, Draft: models.Draft{Text: "A", Quantity: "1", CostPrice: "1", SellPrice: "1"}},
		{Line: 3, Draft: models.Draft{Text: "B", Quantity: "1", CostPrice: "1", SellPrice: "1"}},
	}
	res, err := importRows(context.Background(), s.Products, rows, importAppend)
	require.ErrorIs(t, err, ledger.ErrPersistence)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 0, s.Products.Len())
}

package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
	"github.com/rogerio-castellano/stockbook/internal/repo"
)

type testEnv struct {
	*Env
	out    *bytes.Buffer
	errOut *bytes.Buffer
	store  *repo.InMemoryBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repo.NewInMemoryBlobStore()
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0

	env := NewEnv(func(ctx context.Context, _ *Env) (*ledger.Session, func() error, error) {
		s, err := ledger.Open(ctx, store,
			ledger.WithClock(func() time.Time {
				clock = clock.Add(time.Minute)
				return clock
			}),
			ledger.WithIDGenerator(func() (string, error) {
				n++
				return fmt.Sprintf("p-%d", n), nil
			}),
		)
		return s, nil, err
	})
	te := &testEnv{Env: env, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, store: store}
	env.Out, env.Err = te.out, te.errOut
	env.Format = NewFormatter("USD", false)
	t.Cleanup(func() { require.NoError(t, env.Close()) })
	return te
}

func (te *testEnv) session(t *testing.T) *ledger.Session {
	t.Helper()
	s, err := te.Session(context.Background())
	require.NoError(t, err)
	return s
}

func (te *testEnv) reset() {
	te.out.Reset()
	te.errOut.Reset()
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

// addWidget registers 5 widgets costing 5 and selling for 10, as p-1.
func addWidget(t *testing.T, te *testEnv) {
	t.Helper()
	status := run(t, &addCmd{env: te.Env}, "-name", "Widget", "-qty", "5", "-cost", "5", "-sell", "10")
	require.Equal(t, subcommands.ExitSuccess, status, te.errOut.String())
	te.reset()
}

// Package cli is the terminal front end of stockbook, one subcommand per
// product action.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/rogerio-castellano/stockbook/internal/ledger"
)

// Opener opens the session the commands work on. The close function is
// called once when the program ends.
type Opener func(ctx context.Context, env *Env) (*ledger.Session, func() error, error)

// Env is shared by every command.
type Env struct {
	Out    io.Writer
	Err    io.Writer
	Format *Formatter
	Open   Opener

	session *ledger.Session
	closeFn func() error
}

func NewEnv(open Opener) *Env {
	return &Env{Out: os.Stdout, Err: os.Stderr, Open: open}
}

// Session opens the session on first use and caches it.
func (e *Env) Session(ctx context.Context) (*ledger.Session, error) {
	if e.session != nil {
		return e.session, nil
	}
	s, closeFn, err := e.Open(ctx, e)
	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, err
	}
	e.session, e.closeFn = s, closeFn
	return s, nil
}

func (e *Env) formatter() *Formatter {
	if e.Format == nil {
		e.Format = NewFormatter("BRL", false)
	}
	return e.Format
}

func (e *Env) Close() error {
	if e.closeFn == nil {
		return nil
	}
	err := e.closeFn()
	e.closeFn = nil
	return err
}

// Register adds every stockbook command to the commander.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&addCmd{env: env}, "products")
	c.Register(&editCmd{env: env}, "products")
	c.Register(&listCmd{env: env}, "products")
	c.Register(&sellCmd{env: env}, "products")
	c.Register(&deleteCmd{env: env}, "products")
	c.Register(&importCmd{env: env}, "products")

	c.Register(&soldCmd{env: env}, "sold")

	c.Register(&reportCmd{env: env}, "reports")
}

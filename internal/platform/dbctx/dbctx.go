package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repos fall back to their own handle when Tx is nil.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Background is a Context without a transaction.
func Background(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// InTx returns a copy of c bound to tx.
func (c Context) InTx(tx *gorm.DB) Context {
	return Context{Ctx: c.Ctx, Tx: tx}
}

// Package workshop defines the boundary to Steam Workshop metadata. The
// engine never talks to the network itself; callers plug in a Provider and
// results are cached so offline runs keep working from stale data.
package workshop

import (
	"context"
	"time"
)

// Item is the metadata of one published workshop file.
type Item struct {
	SteamID     string
	Title       string
	Creator     string
	FileSize    int64
	TimeCreated time.Time
	TimeUpdated time.Time
}

// Provider fetches metadata for a batch of published file ids. Ids with no
// result are simply absent from the returned slice; a failed fetch returns an
// error and the caller falls back to cached rows.
type Provider interface {
	FetchItems(ctx context.Context, ids []string) ([]Item, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ids []string) ([]Item, error)

func (f ProviderFunc) FetchItems(ctx context.Context, ids []string) ([]Item, error) {
	return f(ctx, ids)
}

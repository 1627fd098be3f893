package repo

import "context"

// TxRunner executes fn inside a single transactional boundary so that
// multi-document writes (a meal plus its restaurant's meal list) commit or
// abort together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

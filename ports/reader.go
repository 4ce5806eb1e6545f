package ports

import (
	"context"

	"scorecard/domain/table"
)

// DataReader loads a raw tabular dataset from an upstream source
// (file, warehouse table, upload staging area) identified by the
// analysis config's source identifier.
type DataReader interface {
	Read(ctx context.Context, sourceIdentifier string) (*table.Raw, error)
}

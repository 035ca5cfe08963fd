package usecase

import "context"

type SearchUC interface {
	Search(ctx context.Context, req *SearchReq) (*SearchRes, error)
}

type StoreReloader interface {
	ApplyRebuild(ctx context.Context, event *RebuildEvent) error
}

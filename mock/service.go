package mock

import (
	"context"

	"github.com/fwojciec/citycopy"
)

var _ citycopy.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of citycopy.ContentService.
type ContentService struct {
	GetOrGenerateFn func(ctx context.Context, req *citycopy.GenerateRequest) (*citycopy.ContentResult, error)
}

func (s *ContentService) GetOrGenerate(ctx context.Context, req *citycopy.GenerateRequest) (*citycopy.ContentResult, error) {
	return s.GetOrGenerateFn(ctx, req)
}

package quota

import (
	"context"

	id "edumatch/pkg/domain"
)

// Store persists per-institution quotas. Get returns zero for institutions
// that were never configured: an institution has no admission capacity until
// an operator grants it one.
type Store interface {
	Set(ctx context.Context, q Quota) error
	Get(ctx context.Context, institution id.InstitutionID) (int, error)
	List(ctx context.Context) ([]Quota, error)
}

package services

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// slugCreateRetries bounds how often a create is retried when the
// unique slug index reports a conflict from a concurrent writer.
const slugCreateRetries = 3

// uniqueSlug derives the URL identifier for a store name. Existing
// slugs matching base or base-<n> bump the new slug to base-<count+1>.
// The result can still collide with a concurrent writer; the unique
// index catches that and the caller retries.
func (s *StoreService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	count, err := s.stores.CountSlugLike(ctx, base)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return fmt.Sprintf("%s-%d", base, count+1), nil
	}
	return base, nil
}

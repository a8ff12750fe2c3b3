package service

import (
	"errors"
	"fmt"

	"github.com/brightfold/studio-backend/internal/utils"
	"gorm.io/gorm"
)

var ErrInvalidSlug = errors.New("slug must be lowercase, hyphen-delimited alphanumeric")

// slugRetries bounds how often a create is re-probed when a concurrent
// insert claims the candidate slug between the probe and our write.
const slugRetries = 3

// uniqueSlug normalizes the requested slug (deriving it from the title
// when absent) and resolves collisions by appending -2, -3, ... until
// the probe finds a free slug. current, when non-empty, is the slug
// already owned by the document being updated.
func uniqueSlug(requested, title, current string, exists func(string) (bool, error)) (string, error) {
	base := requested
	if base == "" {
		base = title
	}
	base = utils.Slugify(base)
	if base == "" {
		return "", ErrInvalidSlug
	}

	candidate := base
	for suffix := 2; ; suffix++ {
		if candidate == current {
			return candidate, nil
		}
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// createWithUniqueSlug probes for a free slug and runs create with it.
// The probe and the insert are not atomic, so a concurrent creation
// sharing the base slug can win the unique index first; when that
// surfaces as a duplicate-key error the probe is repeated, which now
// sees the competitor's row and moves to the next suffix.
func createWithUniqueSlug(requested, title string, exists func(string) (bool, error), create func(slug string) error) error {
	for attempt := 0; ; attempt++ {
		slug, err := uniqueSlug(requested, title, "", exists)
		if err != nil {
			return err
		}

		err = create(slug)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == slugRetries {
			return err
		}
	}
}

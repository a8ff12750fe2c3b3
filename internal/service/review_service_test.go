package service_test

import (
	"testing"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/internal/service"
	"github.com/brightfold/studio-backend/internal/testutil"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewService(t *testing.T) *service.ReviewService {
	require.NoError(t, logger.Init(false))

	testDB := testutil.SetupTestDatabase(t)
	t.Cleanup(func() { testDB.Teardown(t) })
	testutil.CleanDatabase(t, testDB.DB)

	return service.NewReviewService(repository.NewReviewRepository(testDB.DB))
}

func TestReviewCreate_Validation(t *testing.T) {
	svc := setupReviewService(t)

	tests := []struct {
		name    string
		review  models.Review
		wantErr error
	}{
		{
			name:   "valid",
			review: models.Review{Quote: "Great work", Author: "Dana", Rating: 5},
		},
		{
			name:    "missing quote",
			review:  models.Review{Author: "Dana", Rating: 5},
			wantErr: models.ErrMissingFields,
		},
		{
			name:    "missing author",
			review:  models.Review{Quote: "Great work", Rating: 5},
			wantErr: models.ErrMissingFields,
		},
		{
			name:    "rating too low",
			review:  models.Review{Quote: "Great work", Author: "Dana", Rating: 0},
			wantErr: models.ErrInvalidRating,
		},
		{
			name:    "rating too high",
			review:  models.Review{Quote: "Great work", Author: "Dana", Rating: 6},
			wantErr: models.ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := tt.review
			err := svc.Create(&review)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, review.ID)
		})
	}
}

func TestReviewList_FeaturedFilterAndOrder(t *testing.T) {
	svc := setupReviewService(t)

	seed := []models.Review{
		{Quote: "Second featured", Author: "A", Rating: 5, Featured: true, SortOrder: 2},
		{Quote: "First featured", Author: "B", Rating: 4, Featured: true, SortOrder: 1},
		{Quote: "Not featured", Author: "C", Rating: 5},
	}
	for i := range seed {
		require.NoError(t, svc.Create(&seed[i]))
	}

	all, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	featured, err := svc.List(true)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "First featured", featured[0].Quote)
	assert.Equal(t, "Second featured", featured[1].Quote)
}

func TestReviewUpdate_AndDelete(t *testing.T) {
	svc := setupReviewService(t)

	review := &models.Review{Quote: "Solid", Author: "Dana", Rating: 4}
	require.NoError(t, svc.Create(review))

	updated, err := svc.Update(review.ID, &models.Review{Quote: "Very solid", Author: "Dana", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, review.ID, updated.ID)
	assert.Equal(t, 5, updated.Rating)

	_, err = svc.Update(uuid.New(), &models.Review{Quote: "x", Author: "y", Rating: 3})
	assert.ErrorIs(t, err, service.ErrReviewNotFound)

	require.NoError(t, svc.Delete(review.ID))
	_, err = svc.Get(review.ID)
	assert.ErrorIs(t, err, service.ErrReviewNotFound)
}

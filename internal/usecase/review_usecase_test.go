package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewUsecase() (*usecase.ReviewUsecase, *ReviewRepoMock, *ProductRepoMock) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)
	u := usecase.NewReviewUsecase(reviewRepo, productRepo)
	return u, reviewRepo, productRepo
}

func TestReviewUsecase_Create_Success(t *testing.T) {
	u, reviewRepo, productRepo := newReviewUsecase()
	ctx := context.Background()

	productRepo.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, IsActive: true}, nil)
	reviewRepo.On("ExistsByProductAndUser", ctx, int64(7), int64(1)).Return(false, nil)
	reviewRepo.On("Create", ctx, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 7 && r.UserID == 1 && r.Rating == 5 && r.Body == "Great quality"
	})).Return(model.Review{ID: 1, ProductID: 7, UserID: 1, Rating: 5}, nil)

	out, err := u.Create(ctx, 1, 7, usecase.CreateReviewInput{Rating: 5, Title: "Love it", Body: " Great quality "})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	reviewRepo.AssertExpectations(t)
}

func TestReviewUsecase_Create_SecondReviewConflicts(t *testing.T) {
	u, reviewRepo, productRepo := newReviewUsecase()
	ctx := context.Background()

	productRepo.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, IsActive: true}, nil)
	reviewRepo.On("ExistsByProductAndUser", ctx, int64(7), int64(1)).Return(true, nil)

	_, err := u.Create(ctx, 1, 7, usecase.CreateReviewInput{Rating: 4, Body: "again"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewUsecase_Create_RatingOutOfRange(t *testing.T) {
	u, _, _ := newReviewUsecase()

	for _, rating := range []int{0, 6} {
		_, err := u.Create(context.Background(), 1, 7, usecase.CreateReviewInput{Rating: rating, Body: "x"})

		ve, ok := usecase.AsValidationError(err)
		assert.True(t, ok, "rating %d", rating)
		assert.Contains(t, ve.Fields, "rating")
	}
}

func TestReviewUsecase_Delete_OthersReviewIsNotFound(t *testing.T) {
	u, reviewRepo, _ := newReviewUsecase()
	ctx := context.Background()

	reviewRepo.On("FindByID", ctx, int64(5)).Return(model.Review{ID: 5, UserID: 2}, nil)

	err := u.Delete(ctx, 1, 5)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	reviewRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAddressUsecase() (*usecase.AddressUsecase, *AddressRepoMock) {
	addressRepo := new(AddressRepoMock)
	u := usecase.NewAddressUsecase(addressRepo)
	return u, addressRepo
}

func validAddressInput() usecase.AddressInput {
	return usecase.AddressInput{
		Name:       "Hanako Tanaka",
		PostalCode: "150-0001",
		Prefecture: "Tokyo",
		City:       "Shibuya",
		Line1:      "1-2-3 Jingumae",
	}
}

func TestAddressUsecase_Create_TrimsAndSetsDefault(t *testing.T) {
	u, addressRepo := newAddressUsecase()
	ctx := context.Background()

	in := validAddressInput()
	in.Name = "  Hanako Tanaka  "
	in.IsDefault = true

	addressRepo.On("Create", ctx, mock.MatchedBy(func(a model.Address) bool {
		return a.UserID == 1 && a.Name == "Hanako Tanaka"
	})).Return(model.Address{ID: 5, UserID: 1, Name: "Hanako Tanaka"}, nil)
	addressRepo.On("SetDefault", ctx, int64(1), int64(5)).Return(nil)

	out, err := u.Create(ctx, 1, in)

	assert.NoError(t, err)
	assert.True(t, out.IsDefault)
	addressRepo.AssertExpectations(t)
}

func TestAddressUsecase_Create_MissingFields(t *testing.T) {
	u, addressRepo := newAddressUsecase()

	_, err := u.Create(context.Background(), 1, usecase.AddressInput{Line2: "apt 4"})

	ve, ok := usecase.AsValidationError(err)
	assert.True(t, ok)
	for _, key := range []string{"name", "postal_code", "prefecture", "city", "line1"} {
		assert.Contains(t, ve.Fields, key)
	}
	addressRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddressUsecase_Update_OtherUsersAddressIsNotFound(t *testing.T) {
	u, addressRepo := newAddressUsecase()
	ctx := context.Background()

	addressRepo.On("FindByID", ctx, int64(5)).Return(model.Address{ID: 5, UserID: 2}, nil)

	_, err := u.Update(ctx, 1, 5, validAddressInput())

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	addressRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressUsecase_Delete_Success(t *testing.T) {
	u, addressRepo := newAddressUsecase()
	ctx := context.Background()

	addressRepo.On("FindByID", ctx, int64(5)).Return(model.Address{ID: 5, UserID: 1}, nil)
	addressRepo.On("Delete", ctx, int64(5)).Return(nil)

	assert.NoError(t, u.Delete(ctx, 1, 5))
	addressRepo.AssertExpectations(t)
}

func TestAddressUsecase_SetDefault_UnknownAddressIsNotFound(t *testing.T) {
	u, addressRepo := newAddressUsecase()
	ctx := context.Background()

	addressRepo.On("FindByID", ctx, int64(99)).Return(model.Address{}, repo.ErrNotFound)

	err := u.SetDefault(ctx, 1, 99)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	addressRepo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything, mock.Anything)
}

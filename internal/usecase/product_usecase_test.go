package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/usecase"
	"github.com/nmoreno/ventapos/internal/usecase/mocks"
)

func TestProductUseCase_CreateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("prod-1")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewProductUseCase(repo, idGen)

	product, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:     "Widget",
		Quantity: 10,
		Price:    decimal.NewFromFloat(5.00),
		Category: "tools",
	})
	require.NoError(t, err)
	require.Equal(t, "prod-1", product.ID)
	require.Equal(t, int64(10), product.Quantity)
	require.False(t, product.CreatedAt.IsZero())
}

func TestProductUseCase_CreateProduct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.CreateProductInput
		expectErr error
	}{
		{
			name:      "missing name",
			input:     usecase.CreateProductInput{Price: decimal.NewFromInt(1)},
			expectErr: domain.ErrNameRequired,
		},
		{
			name:      "negative price",
			input:     usecase.CreateProductInput{Name: "Widget", Price: decimal.NewFromInt(-1)},
			expectErr: domain.ErrNegativePrice,
		},
		{
			name:      "negative stock",
			input:     usecase.CreateProductInput{Name: "Widget", Quantity: -3, Price: decimal.NewFromInt(1)},
			expectErr: domain.ErrNegativeStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockProductRepository(ctrl)
			idGen := mocks.NewMockIDGenerator(ctrl)

			// Invalid input must be rejected before any write.
			idGen.EXPECT().Generate().Return("prod-x")

			uc := usecase.NewProductUseCase(repo, idGen)

			_, err := uc.CreateProduct(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestProductUseCase_ListProducts_ClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	repo.EXPECT().List(gomock.Any(), usecase.DefaultPageSize, 0).Return(nil, nil)
	repo.EXPECT().List(gomock.Any(), usecase.MaxPageSize, 10).Return(nil, nil)

	uc := usecase.NewProductUseCase(repo, idGen)

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{})
	require.NoError(t, err)

	_, err = uc.ListProducts(context.Background(), usecase.ListProductsInput{Limit: 5000, Offset: 10})
	require.NoError(t, err)
}

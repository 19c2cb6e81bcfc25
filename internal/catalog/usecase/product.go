package usecase

import (
	"context"

	"shopchat/internal/catalog"
	"shopchat/internal/model"
)

func (uc *implUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := uc.repo.Search(ctx, query)
	if err != nil {
		uc.l.Errorf(ctx, "uc.SearchProducts: %v", err)
		return nil, err
	}
	return products, nil
}

func (uc *implUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.GetProduct: %v", err)
		return nil, err
	}
	if p == nil {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (uc *implUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListProducts: %v", err)
		return nil, err
	}
	return products, nil
}

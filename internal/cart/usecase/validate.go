package usecase

import (
	"context"

	"shopchat/internal/cart"
	"shopchat/internal/model"
)

// ValidateStock batch-fetches the referenced products and reports a
// shortfall for every line requesting more than the available stock.
// Unknown product ids are a hard error listing every missing id.
func (uc *implUseCase) ValidateStock(ctx context.Context, lines []cart.LineRequest) (cart.Validation, error) {
	if len(lines) == 0 {
		return cart.Validation{}, cart.ErrEmptyLines
	}

	products, err := uc.fetchProducts(ctx, productIDs(lines))
	if err != nil {
		return cart.Validation{}, err
	}

	var shortfalls []cart.StockShortfall
	for _, line := range lines {
		p := products[line.ProductID]
		if line.Quantity > p.Stock {
			shortfalls = append(shortfalls, cart.StockShortfall{
				ProductID:         line.ProductID,
				ProductName:       p.Name,
				AvailableStock:    p.Stock,
				RequestedQuantity: line.Quantity,
			})
		}
	}

	return cart.Validation{Products: products, Shortfalls: shortfalls}, nil
}

// fetchProducts loads all ids in one batch and fails hard when any id does
// not exist. Not-found is distinct from a shortfall.
func (uc *implUseCase) fetchProducts(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	found, err := uc.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		uc.l.Errorf(ctx, "uc.fetchProducts FindProductsByIDs: %v", err)
		return nil, err
	}

	products := make(map[int64]model.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &cart.ProductNotFoundError{IDs: missing}
	}
	return products, nil
}

// productIDs returns the unique product ids in first-seen order.
func productIDs(lines []cart.LineRequest) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

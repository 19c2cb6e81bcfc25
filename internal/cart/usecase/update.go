package usecase

import (
	"context"
	"errors"

	"shopchat/internal/cart"
	"shopchat/internal/cart/repository"
	"shopchat/internal/model"
)

// UpdateCart reconciles the persisted cart towards the desired final state.
// Only net additions are stock-validated; shrinking or removing a line
// always succeeds and releases stock. The whole change commits as one
// transaction or not at all.
func (uc *implUseCase) UpdateCart(ctx context.Context, cartID int64, lines []cart.LineRequest) (cart.Result, error) {
	if len(lines) == 0 {
		return cart.Result{}, cart.ErrEmptyLines
	}

	current, err := uc.repo.GetCartWithLines(ctx, cartID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.UpdateCart GetCartWithLines: %v", err)
		return cart.Result{}, err
	}
	if current == nil {
		return cart.Result{}, cart.ErrCartNotFound
	}

	desired := normalizeDesired(lines)
	deltas := cart.ComputeDeltas(current.Lines, desired)
	if len(deltas) == 0 {
		// Desired state already matches; nothing to commit.
		return cart.Result{Cart: current}, nil
	}

	shortfalls, err := uc.validateDeltas(ctx, current, desired, deltas)
	if err != nil {
		return cart.Result{}, err
	}
	if len(shortfalls) > 0 {
		return cart.Result{Shortfalls: shortfalls}, nil
	}

	opt := buildUpdateOptions(cartID, current.Lines, desired, deltas)
	updated, err := uc.repo.UpdateCartAtomic(ctx, opt)
	if errors.Is(err, repository.ErrStockConflict) {
		uc.l.Warnf(ctx, "uc.UpdateCart stock conflict, re-validating")
		shortfalls, vErr := uc.validateDeltas(ctx, current, desired, deltas)
		if vErr != nil {
			return cart.Result{}, vErr
		}
		if len(shortfalls) > 0 {
			return cart.Result{Shortfalls: shortfalls}, nil
		}
		return cart.Result{}, err
	}
	if errors.Is(err, repository.ErrCartNotFound) {
		return cart.Result{}, cart.ErrCartNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.UpdateCart UpdateCartAtomic: %v", err)
		return cart.Result{}, err
	}

	return cart.Result{Cart: updated}, nil
}

// GetCart returns the cart with its lines, or nil when it does not exist.
func (uc *implUseCase) GetCart(ctx context.Context, cartID int64) (*model.Cart, error) {
	return uc.repo.GetCartWithLines(ctx, cartID)
}

// validateDeltas stock-checks only the net additions. The reported
// available stock is the maximum final quantity the user can end up with
// (what the cart already holds plus what is left on the shelf), so that
// adjust-to-available lands on a committable request.
func (uc *implUseCase) validateDeltas(ctx context.Context, current *model.Cart, desired []cart.LineRequest, deltas []cart.StockDelta) ([]cart.StockShortfall, error) {
	var positiveIDs []int64
	for _, d := range deltas {
		if d.Delta > 0 {
			positiveIDs = append(positiveIDs, d.ProductID)
		}
	}
	if len(positiveIDs) == 0 {
		return nil, nil
	}

	products, err := uc.fetchProducts(ctx, positiveIDs)
	if err != nil {
		return nil, err
	}

	currentQty := make(map[int64]int, len(current.Lines))
	for _, l := range current.Lines {
		currentQty[l.ProductID] = l.Quantity
	}
	desiredQty := make(map[int64]int, len(desired))
	for _, l := range desired {
		desiredQty[l.ProductID] = l.Quantity
	}

	var shortfalls []cart.StockShortfall
	for _, d := range deltas {
		if d.Delta <= 0 {
			continue
		}
		p := products[d.ProductID]
		if d.Delta > p.Stock {
			shortfalls = append(shortfalls, cart.StockShortfall{
				ProductID:         d.ProductID,
				ProductName:       p.Name,
				AvailableStock:    currentQty[d.ProductID] + p.Stock,
				RequestedQuantity: desiredQty[d.ProductID],
			})
		}
	}
	return shortfalls, nil
}

// normalizeDesired collapses duplicate product ids (last writer wins) and
// clamps negative quantities to zero, preserving first-seen order.
func normalizeDesired(lines []cart.LineRequest) []cart.LineRequest {
	index := make(map[int64]int, len(lines))
	normalized := make([]cart.LineRequest, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 0 {
			l.Quantity = 0
		}
		if i, ok := index[l.ProductID]; ok {
			normalized[i] = l
			continue
		}
		index[l.ProductID] = len(normalized)
		normalized = append(normalized, l)
	}
	return normalized
}

// buildUpdateOptions translates the reconciled state into the repository's
// transactional update: removals, upserts, and signed stock deltas.
func buildUpdateOptions(cartID int64, current []model.CartLine, desired []cart.LineRequest, deltas []cart.StockDelta) repository.UpdateCartOptions {
	currentQty := make(map[int64]int, len(current))
	for _, l := range current {
		currentQty[l.ProductID] = l.Quantity
	}
	desiredQty := make(map[int64]int, len(desired))
	for _, l := range desired {
		desiredQty[l.ProductID] = l.Quantity
	}

	opt := repository.UpdateCartOptions{CartID: cartID, StockDeltas: deltas}
	for _, d := range deltas {
		qty := desiredQty[d.ProductID]
		if qty <= 0 {
			if currentQty[d.ProductID] > 0 {
				opt.DeleteProductIDs = append(opt.DeleteProductIDs, d.ProductID)
			}
			continue
		}
		opt.Upserts = append(opt.Upserts, cart.LineRequest{ProductID: d.ProductID, Quantity: qty})
	}
	return opt
}

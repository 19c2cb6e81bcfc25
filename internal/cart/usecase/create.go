package usecase

import (
	"context"
	"errors"

	"shopchat/internal/cart"
	"shopchat/internal/cart/repository"
)

// CreateCart validates stock and persists a new cart atomically. A
// shortfall returns the negotiable variant without mutating anything.
func (uc *implUseCase) CreateCart(ctx context.Context, lines []cart.LineRequest) (cart.Result, error) {
	lines = positiveLines(lines)
	if len(lines) == 0 {
		return cart.Result{}, cart.ErrEmptyLines
	}

	validation, err := uc.ValidateStock(ctx, lines)
	if err != nil {
		return cart.Result{}, err
	}
	if len(validation.Shortfalls) > 0 {
		return cart.Result{Shortfalls: validation.Shortfalls}, nil
	}

	created, err := uc.repo.CreateCartAtomic(ctx, lines)
	if errors.Is(err, repository.ErrStockConflict) {
		// Lost a race after validation: report fresh shortfalls instead of
		// failing the turn.
		uc.l.Warnf(ctx, "uc.CreateCart stock conflict, re-validating")
		revalidation, vErr := uc.ValidateStock(ctx, lines)
		if vErr != nil {
			return cart.Result{}, vErr
		}
		if len(revalidation.Shortfalls) > 0 {
			return cart.Result{Shortfalls: revalidation.Shortfalls}, nil
		}
		return cart.Result{}, err
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateCart CreateCartAtomic: %v", err)
		return cart.Result{}, err
	}

	return cart.Result{Cart: created}, nil
}

// positiveLines drops zero and negative quantities; removal requests make
// no sense on a cart that does not exist yet.
func positiveLines(lines []cart.LineRequest) []cart.LineRequest {
	kept := make([]cart.LineRequest, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	return kept
}

package usecase

import (
	"shopchat/internal/cart"
	"shopchat/internal/cart/repository"
	"shopchat/pkg/log"
)

// implUseCase is the private implementation of cart.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

var _ cart.UseCase = (*implUseCase)(nil)

// New creates a new cart UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}

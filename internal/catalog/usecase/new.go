package usecase

import (
	"shopchat/internal/catalog"
	"shopchat/internal/catalog/repository"
	"shopchat/pkg/log"
)

// implUseCase is the private implementation of catalog.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

var _ catalog.UseCase = (*implUseCase)(nil)

// New creates a new catalog UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}

package usecase

import (
	"shopchat/internal/cart"
	"shopchat/internal/catalog"
	"shopchat/internal/chat"
	"shopchat/internal/intent"
	"shopchat/internal/session"
	"shopchat/pkg/llmprovider"
	"shopchat/pkg/log"
)

// implUseCase is the private implementation of chat.UseCase.
type implUseCase struct {
	sessions session.Store
	resolver intent.Resolver
	carts    cart.UseCase
	catalog  catalog.UseCase
	llm      llmprovider.Completer
	l        log.Logger
}

var _ chat.UseCase = (*implUseCase)(nil)

// New creates a new chat UseCase implementation.
func New(
	sessions session.Store,
	resolver intent.Resolver,
	carts cart.UseCase,
	catalogUC catalog.UseCase,
	llm llmprovider.Completer,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		sessions: sessions,
		resolver: resolver,
		carts:    carts,
		catalog:  catalogUC,
		llm:      llm,
		l:        l,
	}
}

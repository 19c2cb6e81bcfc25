package http

import (
	"github.com/gin-gonic/gin"

	"shopchat/internal/cart"
	"shopchat/internal/catalog"
	"shopchat/internal/chat"
	pkgLog "shopchat/pkg/log"
)

// Handler is the interface for the REST delivery handler.
type Handler interface {
	ProcessMessage(c *gin.Context)
	GetProducts(c *gin.Context)
	GetCart(c *gin.Context)
}

// New creates a new REST delivery handler.
func New(l pkgLog.Logger, uc chat.UseCase, catalogUC catalog.UseCase, cartUC cart.UseCase) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		catalog: catalogUC,
		carts:   cartUC,
	}
}

type handler struct {
	l       pkgLog.Logger
	uc      chat.UseCase
	catalog catalog.UseCase
	carts   cart.UseCase
}

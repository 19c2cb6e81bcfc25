package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopchat/internal/chat"
	pkgResponse "shopchat/pkg/response"
)

// ProcessMessage runs one conversational turn.
// @POST /api/v1/message
func (h *handler) ProcessMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req processMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "chat.http.ProcessMessage: invalid request: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	output, err := h.uc.ProcessUserMessage(ctx, chat.Input{
		SessionID: req.SessionID,
		Text:      req.Message,
	})
	if err != nil {
		h.l.Errorf(ctx, "chat.http.ProcessMessage: %v", err)
		pkgResponse.InternalError(c)
		return
	}

	pkgResponse.OK(c, processMessageResponse{
		Reply:     output.Reply,
		SessionID: output.SessionID,
	})
}

// GetProducts lists or searches the catalog.
// @GET /api/v1/products?q=
func (h *handler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.catalog.SearchProducts(ctx, c.Query("q"))
	if err != nil {
		h.l.Errorf(ctx, "chat.http.GetProducts: %v", err)
		pkgResponse.InternalError(c)
		return
	}
	pkgResponse.OK(c, products)
}

// GetCart returns one cart with its lines.
// @GET /api/v1/carts/:id
func (h *handler) GetCart(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		pkgResponse.Error(c, errors.New("invalid cart id"))
		return
	}

	cartData, err := h.carts.GetCart(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "chat.http.GetCart: %v", err)
		pkgResponse.InternalError(c)
		return
	}
	if cartData == nil {
		pkgResponse.NotFound(c, errors.New("cart not found"))
		return
	}
	pkgResponse.OK(c, cartData)
}

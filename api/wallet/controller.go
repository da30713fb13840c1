// Package wallet - wallet API controller. Balance mutations are keyed by
// shop ID in the path; admin-only routes are enforced by the auth
// middleware in front of this group.
package wallet

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Gift5848/gethub222-sub001/api/ctxutil"
	"github.com/Gift5848/gethub222-sub001/api/response"
	walletapp "github.com/Gift5848/gethub222-sub001/application/wallet"

	"github.com/gin-gonic/gin"
)

// Controller handles the wallet ledger endpoints.
type Controller struct {
	walletService *walletapp.ApplicationService
}

func NewController(walletService *walletapp.ApplicationService) *Controller {
	return &Controller{
		walletService: walletService,
	}
}

// RegisterRoutes registers the wallet routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	walletGroup := router.Group("/wallets")
	{
		walletGroup.POST("/:shopId", c.CreateWallet)
		walletGroup.GET("/:shopId", c.GetWallet)
		walletGroup.GET("/:shopId/transactions", c.GetTransactions)
		walletGroup.GET("/:shopId/freeze-quote", c.QuoteFreeze)

		walletGroup.POST("/:shopId/deposit", c.Deposit)
		walletGroup.POST("/:shopId/freeze", c.Freeze)
		walletGroup.POST("/:shopId/unfreeze", c.Unfreeze)
		walletGroup.POST("/:shopId/debit-frozen", c.DebitFrozen)
		walletGroup.POST("/:shopId/refund", c.Refund)
	}
}

// CreateWallet provisions a wallet for a shop. Idempotent.
// POST /api/v1/wallets/:shopId
func (c *Controller) CreateWallet(ctx *gin.Context) {
	wallet, err := c.walletService.CreateWallet(ctxutil.WithRequestID(ctx), ctx.Param("shopId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, wallet, "wallet created successfully")
}

// GetWallet returns a shop's wallet.
// GET /api/v1/wallets/:shopId
func (c *Controller) GetWallet(ctx *gin.Context) {
	wallet, err := c.walletService.GetWallet(ctxutil.WithRequestID(ctx), ctx.Param("shopId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, wallet, "wallet retrieved successfully")
}

// GetTransactions returns the newest ledger entries.
// GET /api/v1/wallets/:shopId/transactions?limit=50
func (c *Controller) GetTransactions(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		response.HandleError(ctx, err, "invalid limit parameter", http.StatusBadRequest)
		return
	}

	entries, err := c.walletService.GetEntries(ctxutil.WithRequestID(ctx), ctx.Param("shopId"), limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, entries, "transactions retrieved successfully")
}

// QuoteFreeze previews the fee freeze for a listing price.
// GET /api/v1/wallets/:shopId/freeze-quote?price=500
func (c *Controller) QuoteFreeze(ctx *gin.Context) {
	price, err := strconv.ParseInt(ctx.Query("price"), 10, 64)
	if err != nil {
		response.HandleError(ctx, err, "invalid price parameter", http.StatusBadRequest)
		return
	}

	quote, err := c.walletService.QuoteFreeze(ctxutil.WithRequestID(ctx), ctx.Param("shopId"), price)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, quote, "freeze quote computed")
}

// Deposit credits a wallet.
// POST /api/v1/wallets/:shopId/deposit
func (c *Controller) Deposit(ctx *gin.Context) {
	c.mutate(ctx, c.walletService.Deposit, "deposit recorded")
}

// Freeze earmarks available funds.
// POST /api/v1/wallets/:shopId/freeze
func (c *Controller) Freeze(ctx *gin.Context) {
	c.mutate(ctx, c.walletService.Freeze, "funds frozen")
}

// Unfreeze releases earmarked funds.
// POST /api/v1/wallets/:shopId/unfreeze
func (c *Controller) Unfreeze(ctx *gin.Context) {
	c.mutate(ctx, c.walletService.Unfreeze, "funds unfrozen")
}

// DebitFrozen realizes a fee against frozen funds.
// POST /api/v1/wallets/:shopId/debit-frozen
func (c *Controller) DebitFrozen(ctx *gin.Context) {
	c.mutate(ctx, c.walletService.DebitFrozen, "fee debited")
}

// Refund credits a wallet from a privileged caller.
// POST /api/v1/wallets/:shopId/refund
func (c *Controller) Refund(ctx *gin.Context) {
	c.mutate(ctx, c.walletService.Refund, "refund recorded")
}

func (c *Controller) mutate(ctx *gin.Context, fn func(context.Context, walletapp.MutateRequest) (*walletapp.WalletResponse, error), message string) {
	var req walletapp.MutateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ShopID = ctx.Param("shopId")

	wallet, err := fn(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, wallet, message)
}

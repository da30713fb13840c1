// Package shop - shop registration and review API controller.
package shop

import (
	"context"
	"net/http"

	"github.com/Gift5848/gethub222-sub001/api/ctxutil"
	"github.com/Gift5848/gethub222-sub001/api/response"
	shopapp "github.com/Gift5848/gethub222-sub001/application/shop"

	"github.com/gin-gonic/gin"
)

// Controller handles the shop registration endpoints.
type Controller struct {
	shopService *shopapp.ApplicationService
}

func NewController(shopService *shopapp.ApplicationService) *Controller {
	return &Controller{
		shopService: shopService,
	}
}

// RegisterRoutes registers the shop routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	shopGroup := router.Group("/shops")
	{
		shopGroup.POST("", c.Register)
		shopGroup.GET("/:id", c.GetShop)
		shopGroup.GET("/owner/:ownerId", c.GetOwnerShops)
		shopGroup.GET("/queue/:status", c.GetReviewQueue)

		shopGroup.POST("/:id/approve", c.Approve)
		shopGroup.POST("/:id/reject", c.Reject)
		shopGroup.POST("/:id/request-info", c.RequestInfo)
		shopGroup.POST("/:id/resubmit", c.Resubmit)
	}
}

// Register files a shop registration request.
// POST /api/v1/shops
func (c *Controller) Register(ctx *gin.Context) {
	var req shopapp.RegisterShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	shop, err := c.shopService.Register(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, shop, "shop registration submitted")
}

// GetShop returns one shop.
// GET /api/v1/shops/:id
func (c *Controller) GetShop(ctx *gin.Context) {
	shop, err := c.shopService.GetShop(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shop, "shop retrieved successfully")
}

// GetOwnerShops returns the owner's shops.
// GET /api/v1/shops/owner/:ownerId
func (c *Controller) GetOwnerShops(ctx *gin.Context) {
	shops, err := c.shopService.GetOwnerShops(ctxutil.WithRequestID(ctx), ctx.Param("ownerId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shops, "shops retrieved successfully")
}

// GetReviewQueue returns shops awaiting review, oldest first.
// GET /api/v1/shops/queue/:status
func (c *Controller) GetReviewQueue(ctx *gin.Context) {
	shops, err := c.shopService.GetReviewQueue(ctxutil.WithRequestID(ctx), ctx.Param("status"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shops, "review queue retrieved successfully")
}

// Approve accepts a pending request and provisions the shop wallet.
// POST /api/v1/shops/:id/approve
func (c *Controller) Approve(ctx *gin.Context) {
	c.review(ctx, c.shopService.Approve, "shop approved")
}

// Reject declines a pending request.
// POST /api/v1/shops/:id/reject
func (c *Controller) Reject(ctx *gin.Context) {
	c.review(ctx, c.shopService.Reject, "shop rejected")
}

// RequestInfo asks the owner for more information.
// POST /api/v1/shops/:id/request-info
func (c *Controller) RequestInfo(ctx *gin.Context) {
	c.review(ctx, c.shopService.RequestInfo, "information requested")
}

// Resubmit returns an info_requested shop to the review queue.
// POST /api/v1/shops/:id/resubmit
func (c *Controller) Resubmit(ctx *gin.Context) {
	var req shopapp.ResubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ShopID = ctx.Param("id")

	shop, err := c.shopService.Resubmit(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shop, "shop resubmitted")
}

func (c *Controller) review(ctx *gin.Context, fn func(context.Context, shopapp.ReviewRequest) (*shopapp.ShopResponse, error), message string) {
	var req shopapp.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ShopID = ctx.Param("id")

	shop, err := fn(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shop, message)
}

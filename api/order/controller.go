/*
Package order - order API controller.

Responsibilities:
 1. Parse and bind HTTP requests.
 2. Delegate to the order application service.
 3. Render results through the response package.

Binding errors return 400 via response.HandleError; business errors go
through response.HandleAppError which maps domain sentinels to status
codes. The lifecycle endpoints take the order ID from the path.
*/
package order

import (
	"context"
	"net/http"
	"time"

	"github.com/Gift5848/gethub222-sub001/api/ctxutil"
	"github.com/Gift5848/gethub222-sub001/api/response"
	orderapp "github.com/Gift5848/gethub222-sub001/application/order"

	"github.com/gin-gonic/gin"
)

// Controller handles the order lifecycle endpoints.
type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.PlaceOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.DELETE("/:id", c.Cancel)

		orderGroup.POST("/:id/payment/approve", c.ApprovePayment)
		orderGroup.POST("/:id/payment/reject", c.RejectPayment)
		orderGroup.POST("/:id/handover", c.Handover)
		orderGroup.POST("/:id/delivery/accept", c.AcceptDelivery)
		orderGroup.POST("/:id/delivery/reject", c.RejectDelivery)
		orderGroup.POST("/:id/delivered", c.MarkDelivered)
		orderGroup.POST("/:id/confirm", c.Confirm)
		orderGroup.POST("/:id/received", c.BuyerReceived)
		orderGroup.POST("/:id/override", c.Override)

		orderGroup.GET("/buyer/:userId", c.GetBuyerOrders)
		orderGroup.GET("/seller/:userId", c.GetSellerOrders)
		orderGroup.GET("/shop/:shopId", c.GetShopOrders)
		orderGroup.GET("/delivery/:userId", c.GetDeliveryOrders)
	}

	// Gateway callback, authenticated by webhook signature middleware.
	router.POST("/payments/webhook", c.PaymentWebhook)
}

// PlaceOrder creates an order from a cart.
// POST /api/v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.PlaceOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order placed successfully")
}

// GetOrder returns one order.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// ListOrders returns orders for the admin dashboard, optionally filtered
// by status, payment_status, shop_id and a from/to placement window
// (RFC 3339).
// GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	filter := orderapp.ListFilter{
		Status:        ctx.Query("status"),
		PaymentStatus: ctx.Query("payment_status"),
		ShopID:        ctx.Query("shop_id"),
	}

	if raw := ctx.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.HandleError(ctx, err, "invalid from timestamp", http.StatusBadRequest)
			return
		}
		filter.From = from
	}
	if raw := ctx.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.HandleError(ctx, err, "invalid to timestamp", http.StatusBadRequest)
			return
		}
		filter.To = to
	}

	orders, err := c.orderService.GetAllOrders(ctxutil.WithRequestID(ctx), filter)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// Cancel removes a pending order.
// DELETE /api/v1/orders/:id
func (c *Controller) Cancel(ctx *gin.Context) {
	var req orderapp.CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")

	if err := c.orderService.Cancel(ctxutil.WithRequestID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// ApprovePayment confirms a manually reconciled payment.
// POST /api/v1/orders/:id/payment/approve
func (c *Controller) ApprovePayment(ctx *gin.Context) {
	c.transition(ctx, c.orderService.ApprovePayment, "payment approved")
}

// RejectPayment records a failed reconciliation.
// POST /api/v1/orders/:id/payment/reject
func (c *Controller) RejectPayment(ctx *gin.Context) {
	c.transition(ctx, c.orderService.RejectPayment, "payment rejected")
}

// Handover records transfer of custody to the courier.
// POST /api/v1/orders/:id/handover
func (c *Controller) Handover(ctx *gin.Context) {
	c.transition(ctx, c.orderService.Handover, "order handed over")
}

// AcceptDelivery is the courier taking the job.
// POST /api/v1/orders/:id/delivery/accept
func (c *Controller) AcceptDelivery(ctx *gin.Context) {
	c.transition(ctx, c.orderService.AcceptDelivery, "delivery accepted")
}

// RejectDelivery releases the courier.
// POST /api/v1/orders/:id/delivery/reject
func (c *Controller) RejectDelivery(ctx *gin.Context) {
	c.transition(ctx, c.orderService.RejectDelivery, "delivery rejected")
}

// Confirm is the courier's final confirmation.
// POST /api/v1/orders/:id/confirm
func (c *Controller) Confirm(ctx *gin.Context) {
	c.transition(ctx, c.orderService.Confirm, "delivery confirmed")
}

// BuyerReceived is the buyer acknowledging receipt.
// POST /api/v1/orders/:id/received
func (c *Controller) BuyerReceived(ctx *gin.Context) {
	c.transition(ctx, c.orderService.BuyerReceived, "receipt confirmed")
}

// MarkDelivered records delivery with proof.
// POST /api/v1/orders/:id/delivered
func (c *Controller) MarkDelivered(ctx *gin.Context) {
	var req orderapp.MarkDeliveredRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")

	order, err := c.orderService.MarkDelivered(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order marked as delivered")
}

// Override is the admin escape hatch.
// POST /api/v1/orders/:id/override
func (c *Controller) Override(ctx *gin.Context) {
	var req orderapp.OverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")

	order, err := c.orderService.Override(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order updated")
}

// PaymentWebhook is the gateway settlement callback.
// POST /api/v1/payments/webhook
func (c *Controller) PaymentWebhook(ctx *gin.Context) {
	var req orderapp.PaymentWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.HandlePaymentWebhook(ctxutil.WithRequestID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "payment status updated")
}

// GetBuyerOrders returns the buyer's orders.
// GET /api/v1/orders/buyer/:userId
func (c *Controller) GetBuyerOrders(ctx *gin.Context) {
	c.list(ctx, c.orderService.GetBuyerOrders, ctx.Param("userId"))
}

// GetSellerOrders returns the seller's orders.
// GET /api/v1/orders/seller/:userId
func (c *Controller) GetSellerOrders(ctx *gin.Context) {
	c.list(ctx, c.orderService.GetSellerOrders, ctx.Param("userId"))
}

// GetShopOrders returns a shop's orders.
// GET /api/v1/orders/shop/:shopId
func (c *Controller) GetShopOrders(ctx *gin.Context) {
	c.list(ctx, c.orderService.GetShopOrders, ctx.Param("shopId"))
}

// GetDeliveryOrders returns the courier's assigned orders.
// GET /api/v1/orders/delivery/:userId
func (c *Controller) GetDeliveryOrders(ctx *gin.Context) {
	c.list(ctx, c.orderService.GetDeliveryOrders, ctx.Param("userId"))
}

type transitionFn func(ctx context.Context, req orderapp.TransitionRequest) (*orderapp.OrderResponse, error)

func (c *Controller) transition(ctx *gin.Context, fn transitionFn, message string) {
	var req orderapp.TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")

	order, err := fn(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, message)
}

func (c *Controller) list(ctx *gin.Context, fn func(context.Context, string) ([]*orderapp.OrderResponse, error), id string) {
	orders, err := fn(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

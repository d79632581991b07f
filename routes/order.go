package routes

import (
	orderControllers "github.com/blueprint-apparel/shop-api/controllers/order"
	"github.com/blueprint-apparel/shop-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Checkout the caller's cart (users and guests alike)
		orders.POST("/checkout", middleware.ValidateToken, orderControllers.CheckoutHandler(db))

		// Fetch the caller's own orders
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))
	}

	adminOrders := r.Group("/admin/orders")
	adminOrders.Use(middleware.ValidateAPIKey)
	{
		// Fetch all orders
		adminOrders.GET("", orderControllers.GetAllOrdersHandler(db))

		// websocket endpoint for real-time order updates
		adminOrders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Fetch a single order by id or order_ref
		adminOrders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Update order status (e.g., shipped, cancelled)
		adminOrders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

		// Update payment status (e.g., paid, refunded)
		adminOrders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

		// Delete an order
		adminOrders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
	}
}

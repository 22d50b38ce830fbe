// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pizzeria/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	OrderHandler    *handler.OrderHandler
	PizzaHandler    *handler.PizzaHandler
	CustomerHandler *handler.CustomerHandler
	PaymentHandler  *handler.PaymentHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	orderHandler    *handler.OrderHandler
	pizzaHandler    *handler.PizzaHandler
	customerHandler *handler.CustomerHandler
	paymentHandler  *handler.PaymentHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		orderHandler:    params.OrderHandler,
		pizzaHandler:    params.PizzaHandler,
		customerHandler: params.CustomerHandler,
		paymentHandler:  params.PaymentHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	orders := api.Group("/orders")
	{
		orders.POST("", r.orderHandler.Create)
		orders.GET("", r.orderHandler.List)
		orders.GET("/pending-delivery", r.orderHandler.ListPendingDelivery)
		orders.GET("/number/:number", r.orderHandler.GetByNumber)
		orders.GET("/:id", r.orderHandler.Get)
		orders.POST("/:id/confirm", r.orderHandler.Confirm)
		orders.POST("/:id/start-preparation", r.orderHandler.StartPreparation)
		orders.POST("/:id/ready", r.orderHandler.MarkReady)
		orders.POST("/:id/assign-delivery-person", r.orderHandler.AssignDeliveryPerson)
		orders.POST("/:id/complete-delivery", r.orderHandler.CompleteDelivery)
		orders.POST("/:id/cancel", r.orderHandler.Cancel)
	}

	pizzas := api.Group("/pizzas")
	{
		pizzas.POST("", r.pizzaHandler.Add)
		pizzas.GET("", r.pizzaHandler.List)
		pizzas.GET("/available", r.pizzaHandler.ListAvailable)
		pizzas.GET("/:id", r.pizzaHandler.Get)
		pizzas.PUT("/:id/price", r.pizzaHandler.ChangePrice)
		pizzas.PUT("/:id/availability", r.pizzaHandler.SetAvailability)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", r.customerHandler.Register)
		customers.GET("", r.customerHandler.List)
		customers.GET("/by-email", r.customerHandler.GetByEmail)
		customers.GET("/:id", r.customerHandler.Get)
		customers.PUT("/:id/contact", r.customerHandler.UpdateContact)
		customers.POST("/:id/deactivate", r.customerHandler.Deactivate)
	}

	payments := api.Group("/payments")
	{
		payments.POST("", r.paymentHandler.Create)
		payments.GET("", r.paymentHandler.List)
		payments.GET("/order/:orderId", r.paymentHandler.GetByOrder)
		payments.GET("/:id", r.paymentHandler.Get)
		payments.POST("/:id/complete", r.paymentHandler.Complete)
		payments.POST("/:id/fail", r.paymentHandler.Fail)
		payments.POST("/:id/refund", r.paymentHandler.Refund)
	}
}

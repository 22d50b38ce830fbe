package dispatch

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"pizzeria/internal/domain/event"
)

// RegisterDefaultHandlers wires the built-in handlers for the ordering flow.
// They only log today; notification and accounting integrations hook in here.
func RegisterDefaultHandlers(d *Dispatcher, logger *slog.Logger) {
	d.Register(event.NameOrderCreated, func(_ context.Context, evt event.DomainEvent) error {
		created, ok := evt.(event.OrderCreated)
		if !ok {
			return errors.Errorf("unexpected payload %T for %s", evt, evt.Name())
		}
		logger.Info("order created",
			slog.String("orderID", created.OrderID.String()),
			slog.String("customerID", created.CustomerID.String()),
			slog.String("total", created.TotalAmount.StringFixed(2)+" "+created.Currency))

		return nil
	})

	d.Register(event.NameOrderConfirmed, func(_ context.Context, evt event.DomainEvent) error {
		confirmed, ok := evt.(event.OrderConfirmed)
		if !ok {
			return errors.Errorf("unexpected payload %T for %s", evt, evt.Name())
		}
		logger.Info("order confirmed", slog.String("orderID", confirmed.OrderID.String()))

		return nil
	})

	d.Register(event.NameOrderDelivered, func(_ context.Context, evt event.DomainEvent) error {
		delivered, ok := evt.(event.OrderDelivered)
		if !ok {
			return errors.Errorf("unexpected payload %T for %s", evt, evt.Name())
		}
		logger.Info("order delivered",
			slog.String("orderID", delivered.OrderID.String()),
			slog.String("deliveryPersonID", delivered.DeliveryPersonID.String()))

		return nil
	})

	d.Register(event.NamePaymentCompleted, func(_ context.Context, evt event.DomainEvent) error {
		completed, ok := evt.(event.PaymentCompleted)
		if !ok {
			return errors.Errorf("unexpected payload %T for %s", evt, evt.Name())
		}
		logger.Info("payment completed",
			slog.String("paymentID", completed.PaymentID.String()),
			slog.String("orderID", completed.OrderID.String()),
			slog.String("amount", completed.Amount.StringFixed(2)+" "+completed.Currency))

		return nil
	})
}

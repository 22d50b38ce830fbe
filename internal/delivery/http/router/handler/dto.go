package handler

import (
	"time"

	"pizzeria/internal/domain/entity"
)

// The response DTOs flatten the aggregates into plain JSON shapes. Money is
// rendered as a fixed two-decimal string next to its currency code.

// AddressDTO is the flat address shape used in requests and responses.
type AddressDTO struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// OrderItemDTO is one order line.
type OrderItemDTO struct {
	ID        string `json:"id"`
	PizzaID   string `json:"pizzaId"`
	PizzaName string `json:"pizzaName"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
	Currency  string `json:"currency"`
}

// OrderDTO is the order aggregate as returned to clients.
type OrderDTO struct {
	ID               string         `json:"id"`
	OrderNumber      string         `json:"orderNumber"`
	CustomerID       string         `json:"customerId"`
	OrderDate        time.Time      `json:"orderDate"`
	Status           string         `json:"status"`
	Total            string         `json:"total"`
	Currency         string         `json:"currency"`
	DeliveryAddress  AddressDTO     `json:"deliveryAddress"`
	DeliveryPersonID *string        `json:"deliveryPersonId,omitempty"`
	Items            []OrderItemDTO `json:"items"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// CustomerDTO is a customer record as returned to clients.
type CustomerDTO struct {
	ID             string      `json:"id"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Email          string      `json:"email"`
	PhoneNumber    string      `json:"phoneNumber"`
	DefaultAddress *AddressDTO `json:"defaultAddress,omitempty"`
	IsActive       bool        `json:"isActive"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// PizzaDTO is a catalog entry as returned to clients.
type PizzaDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   string    `json:"basePrice"`
	Currency    string    `json:"currency"`
	Size        string    `json:"size"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PaymentDTO is a payment as returned to clients.
type PaymentDTO struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"orderId"`
	Amount        string     `json:"amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transactionId,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toAddressDTO(address entity.Address) AddressDTO {
	return AddressDTO{
		Street:  address.Street(),
		City:    address.City(),
		State:   address.State(),
		ZipCode: address.ZipCode(),
		Country: address.Country(),
	}
}

func toOrderDTO(order *entity.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, OrderItemDTO{
			ID:        item.ID().String(),
			PizzaID:   item.PizzaID().String(),
			PizzaName: item.PizzaName(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount().StringFixed(2),
			Subtotal:  item.Subtotal().Amount().StringFixed(2),
			Currency:  item.UnitPrice().Currency(),
		})
	}

	var deliveryPersonID *string
	if id := order.DeliveryPersonID(); id != nil {
		s := id.String()
		deliveryPersonID = &s
	}

	return OrderDTO{
		ID:               order.ID().String(),
		OrderNumber:      order.OrderNumber(),
		CustomerID:       order.CustomerID().String(),
		OrderDate:        order.OrderDate(),
		Status:           order.Status().String(),
		Total:            order.Total().Amount().StringFixed(2),
		Currency:         order.Total().Currency(),
		DeliveryAddress:  toAddressDTO(order.DeliveryAddress()),
		DeliveryPersonID: deliveryPersonID,
		Items:            items,
		CreatedAt:        order.CreatedAt(),
		UpdatedAt:        order.UpdatedAt(),
	}
}

func toOrderDTOs(orders []*entity.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}

	return dtos
}

func toCustomerDTO(customer *entity.Customer) CustomerDTO {
	var defaultAddress *AddressDTO
	if address := customer.DefaultAddress(); address != nil {
		dto := toAddressDTO(*address)
		defaultAddress = &dto
	}

	return CustomerDTO{
		ID:             customer.ID().String(),
		FirstName:      customer.FirstName(),
		LastName:       customer.LastName(),
		Email:          customer.Email(),
		PhoneNumber:    customer.PhoneNumber(),
		DefaultAddress: defaultAddress,
		IsActive:       customer.IsActive(),
		CreatedAt:      customer.CreatedAt(),
		UpdatedAt:      customer.UpdatedAt(),
	}
}

func toPizzaDTO(pizza *entity.Pizza) PizzaDTO {
	return PizzaDTO{
		ID:          pizza.ID().String(),
		Name:        pizza.Name(),
		Description: pizza.Description(),
		BasePrice:   pizza.BasePrice().Amount().StringFixed(2),
		Currency:    pizza.BasePrice().Currency(),
		Size:        pizza.Size().String(),
		IsAvailable: pizza.IsAvailable(),
		CreatedAt:   pizza.CreatedAt(),
		UpdatedAt:   pizza.UpdatedAt(),
	}
}

func toPizzaDTOs(pizzas []*entity.Pizza) []PizzaDTO {
	dtos := make([]PizzaDTO, 0, len(pizzas))
	for _, pizza := range pizzas {
		dtos = append(dtos, toPizzaDTO(pizza))
	}

	return dtos
}

func toPaymentDTO(payment *entity.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            payment.ID().String(),
		OrderID:       payment.OrderID().String(),
		Amount:        payment.Amount().Amount().StringFixed(2),
		Currency:      payment.Amount().Currency(),
		Method:        payment.Method().String(),
		Status:        payment.Status().String(),
		TransactionID: payment.TransactionID(),
		CompletedAt:   payment.CompletedAt(),
		CreatedAt:     payment.CreatedAt(),
		UpdatedAt:     payment.UpdatedAt(),
	}
}

package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/infra/record"
)

const customerColumns = `ID, FIRST_NAME, LAST_NAME, EMAIL, PHONE_NUMBER,
	DEFAULT_STREET, DEFAULT_CITY, DEFAULT_STATE, DEFAULT_ZIPCODE, DEFAULT_COUNTRY,
	IS_ACTIVE, CREATED_AT, UPDATED_AT`

type customerRow struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	DefaultStreet  string
	DefaultCity    string
	DefaultState   string
	DefaultZipCode string
	DefaultCountry string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type customerRepository struct {
	conn   *record.Connection
	uow    repository.UnitOfWork
	schema string
	logger *slog.Logger
}

func newCustomerRepository(conn *record.Connection, uow repository.UnitOfWork, schema string, logger *slog.Logger) repository.CustomerRepository {
	return &customerRepository{conn: conn, uow: uow, schema: schema, logger: logger}
}

func (r *customerRepository) table() string { return qualify(r.schema, tableCustomers) }

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ID = ?", customerColumns, r.table())

	row, err := record.QueryOne[customerRow](ctx, r.conn, stmt, struct{ ID uuid.UUID }{id})
	if err != nil || row == nil {
		return nil, err
	}

	return mapCustomer(row)
}

func (r *customerRepository) GetAll(ctx context.Context) ([]*entity.Customer, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY LAST_NAME ASC, FIRST_NAME ASC",
		customerColumns, r.table())

	rows, err := record.QueryMany[customerRow](ctx, r.conn, stmt, nil)
	if err != nil {
		return nil, err
	}

	customers := make([]*entity.Customer, 0, len(rows))
	for i := range rows {
		customer, err := mapCustomer(&rows[i])
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

func (r *customerRepository) Add(ctx context.Context, customer *entity.Customer) error {
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.table(), customerColumns)

	street, city, state, zipCode, country := flattenAddress(customer.DefaultAddress())
	_, err := r.conn.Execute(ctx, stmt, struct {
		ID             uuid.UUID
		FirstName      string
		LastName       string
		Email          string
		PhoneNumber    string
		DefaultStreet  string
		DefaultCity    string
		DefaultState   string
		DefaultZipCode string
		DefaultCountry string
		IsActive       bool
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}{
		ID:             customer.ID(),
		FirstName:      customer.FirstName(),
		LastName:       customer.LastName(),
		Email:          customer.Email(),
		PhoneNumber:    customer.PhoneNumber(),
		DefaultStreet:  street,
		DefaultCity:    city,
		DefaultState:   state,
		DefaultZipCode: zipCode,
		DefaultCountry: country,
		IsActive:       customer.IsActive(),
		CreatedAt:      customer.CreatedAt(),
		UpdatedAt:      customer.UpdatedAt(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(customer)
	r.logger.Info("customer added", slog.String("customerID", customer.ID().String()))

	return nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	stmt := fmt.Sprintf(`UPDATE %s SET EMAIL = ?, PHONE_NUMBER = ?,
		DEFAULT_STREET = ?, DEFAULT_CITY = ?, DEFAULT_STATE = ?, DEFAULT_ZIPCODE = ?, DEFAULT_COUNTRY = ?,
		IS_ACTIVE = ?, UPDATED_AT = ? WHERE ID = ?`, r.table())

	street, city, state, zipCode, country := flattenAddress(customer.DefaultAddress())
	_, err := r.conn.Execute(ctx, stmt, struct {
		Email          string
		PhoneNumber    string
		DefaultStreet  string
		DefaultCity    string
		DefaultState   string
		DefaultZipCode string
		DefaultCountry string
		IsActive       bool
		UpdatedAt      time.Time
		ID             uuid.UUID
	}{
		Email:          customer.Email(),
		PhoneNumber:    customer.PhoneNumber(),
		DefaultStreet:  street,
		DefaultCity:    city,
		DefaultState:   state,
		DefaultZipCode: zipCode,
		DefaultCountry: country,
		IsActive:       customer.IsActive(),
		UpdatedAt:      customer.UpdatedAt(),
		ID:             customer.ID(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(customer)
	r.logger.Info("customer updated", slog.String("customerID", customer.ID().String()))

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, customer *entity.Customer) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", r.table())
	if _, err := r.conn.Execute(ctx, stmt, struct{ ID uuid.UUID }{customer.ID()}); err != nil {
		return err
	}

	r.logger.Info("customer deleted", slog.String("customerID", customer.ID().String()))

	return nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE EMAIL = ?", customerColumns, r.table())

	row, err := record.QueryOne[customerRow](ctx, r.conn, stmt, struct{ Email string }{email})
	if err != nil || row == nil {
		return nil, err
	}

	return mapCustomer(row)
}

func mapCustomer(row *customerRow) (*entity.Customer, error) {
	var defaultAddress *entity.Address
	// An empty street means the customer never stored a default address.
	if row.DefaultStreet != "" {
		address, err := entity.NewAddress(row.DefaultStreet, row.DefaultCity, row.DefaultState,
			row.DefaultZipCode, row.DefaultCountry)
		if err != nil {
			return nil, err
		}
		defaultAddress = &address
	}

	return entity.RehydrateCustomer(row.ID, row.FirstName, row.LastName, row.Email, row.PhoneNumber,
		defaultAddress, row.IsActive, row.CreatedAt, row.UpdatedAt)
}

// flattenAddress spreads an optional address over the five flat columns, empty
// strings when absent.
func flattenAddress(address *entity.Address) (street, city, state, zipCode, country string) {
	if address == nil {
		return "", "", "", "", ""
	}

	return address.Street(), address.City(), address.State(), address.ZipCode(), address.Country()
}

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

const deliveryPersonColumns = `ID, FIRST_NAME, LAST_NAME, PHONE_NUMBER, VEHICLE_PLATE,
	IS_AVAILABLE, IS_ACTIVE, CREATED_AT, UPDATED_AT`

type deliveryPersonRow struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	PhoneNumber  string
	VehiclePlate string
	IsAvailable  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type deliveryPersonRepository struct {
	conn   *record.Connection
	uow    repository.UnitOfWork
	schema string
	logger *slog.Logger
}

func newDeliveryPersonRepository(conn *record.Connection, uow repository.UnitOfWork, schema string, logger *slog.Logger) repository.DeliveryPersonRepository {
	return &deliveryPersonRepository{conn: conn, uow: uow, schema: schema, logger: logger}
}

func (r *deliveryPersonRepository) table() string { return qualify(r.schema, tableDeliveryPersons) }

func (r *deliveryPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DeliveryPerson, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ID = ?", deliveryPersonColumns, r.table())

	row, err := record.QueryOne[deliveryPersonRow](ctx, r.conn, stmt, struct{ ID uuid.UUID }{id})
	if err != nil || row == nil {
		return nil, err
	}

	return mapDeliveryPerson(row)
}

func (r *deliveryPersonRepository) GetAll(ctx context.Context) ([]*entity.DeliveryPerson, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY LAST_NAME ASC, FIRST_NAME ASC",
		deliveryPersonColumns, r.table())

	rows, err := record.QueryMany[deliveryPersonRow](ctx, r.conn, stmt, nil)
	if err != nil {
		return nil, err
	}

	return mapDeliveryPersons(rows)
}

func (r *deliveryPersonRepository) Add(ctx context.Context, person *entity.DeliveryPerson) error {
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.table(), deliveryPersonColumns)

	_, err := r.conn.Execute(ctx, stmt, struct {
		ID           uuid.UUID
		FirstName    string
		LastName     string
		PhoneNumber  string
		VehiclePlate string
		IsAvailable  bool
		IsActive     bool
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}{
		ID:           person.ID(),
		FirstName:    person.FirstName(),
		LastName:     person.LastName(),
		PhoneNumber:  person.PhoneNumber(),
		VehiclePlate: person.VehiclePlate(),
		IsAvailable:  person.IsAvailable(),
		IsActive:     person.IsActive(),
		CreatedAt:    person.CreatedAt(),
		UpdatedAt:    person.UpdatedAt(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(person)
	r.logger.Info("delivery person added", slog.String("deliveryPersonID", person.ID().String()))

	return nil
}

func (r *deliveryPersonRepository) Update(ctx context.Context, person *entity.DeliveryPerson) error {
	stmt := fmt.Sprintf(`UPDATE %s SET PHONE_NUMBER = ?, VEHICLE_PLATE = ?,
		IS_AVAILABLE = ?, IS_ACTIVE = ?, UPDATED_AT = ? WHERE ID = ?`, r.table())

	_, err := r.conn.Execute(ctx, stmt, struct {
		PhoneNumber  string
		VehiclePlate string
		IsAvailable  bool
		IsActive     bool
		UpdatedAt    time.Time
		ID           uuid.UUID
	}{
		PhoneNumber:  person.PhoneNumber(),
		VehiclePlate: person.VehiclePlate(),
		IsAvailable:  person.IsAvailable(),
		IsActive:     person.IsActive(),
		UpdatedAt:    person.UpdatedAt(),
		ID:           person.ID(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(person)
	r.logger.Info("delivery person updated", slog.String("deliveryPersonID", person.ID().String()))

	return nil
}

func (r *deliveryPersonRepository) Delete(ctx context.Context, person *entity.DeliveryPerson) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", r.table())
	if _, err := r.conn.Execute(ctx, stmt, struct{ ID uuid.UUID }{person.ID()}); err != nil {
		return err
	}

	r.logger.Info("delivery person deleted", slog.String("deliveryPersonID", person.ID().String()))

	return nil
}

func (r *deliveryPersonRepository) GetAvailable(ctx context.Context) ([]*entity.DeliveryPerson, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE IS_AVAILABLE = ? AND IS_ACTIVE = ? ORDER BY LAST_NAME ASC, FIRST_NAME ASC",
		deliveryPersonColumns, r.table())

	rows, err := record.QueryMany[deliveryPersonRow](ctx, r.conn, stmt, struct {
		IsAvailable bool
		IsActive    bool
	}{IsAvailable: true, IsActive: true})
	if err != nil {
		return nil, err
	}

	return mapDeliveryPersons(rows)
}

func mapDeliveryPerson(row *deliveryPersonRow) (*entity.DeliveryPerson, error) {
	return entity.RehydrateDeliveryPerson(row.ID, row.FirstName, row.LastName, row.PhoneNumber,
		row.VehiclePlate, row.IsAvailable, row.IsActive, row.CreatedAt, row.UpdatedAt)
}

func mapDeliveryPersons(rows []deliveryPersonRow) ([]*entity.DeliveryPerson, error) {
	persons := make([]*entity.DeliveryPerson, 0, len(rows))
	for i := range rows {
		person, err := mapDeliveryPerson(&rows[i])
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}

	return persons, nil
}

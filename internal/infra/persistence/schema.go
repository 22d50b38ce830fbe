package persistence

import (
	"context"
	"fmt"

	"pizzeria/internal/infra/record"
)

// ddl holds one CREATE TABLE statement per legacy table, with a %s placeholder
// for the qualified table name. Column types mirror what the legacy store
// holds: identities, decimals and timestamps as text, flags and quantities as
// integers.
var ddl = map[string]string{
	tableOrders: `CREATE TABLE IF NOT EXISTS %s (
		ID TEXT PRIMARY KEY,
		ORDER_NUMBER TEXT NOT NULL,
		CUSTOMER_ID TEXT NOT NULL,
		ORDER_DATE TEXT NOT NULL,
		STATUS TEXT NOT NULL,
		TOTAL_AMOUNT TEXT NOT NULL,
		CURRENCY TEXT NOT NULL,
		DELIVERY_STREET TEXT NOT NULL,
		DELIVERY_CITY TEXT NOT NULL,
		DELIVERY_STATE TEXT NOT NULL,
		DELIVERY_ZIPCODE TEXT NOT NULL,
		DELIVERY_COUNTRY TEXT NOT NULL,
		DELIVERY_PERSON_ID TEXT,
		CREATED_AT TEXT NOT NULL,
		UPDATED_AT TEXT NOT NULL
	)`,
	tableOrderItems: `CREATE TABLE IF NOT EXISTS %s (
		ID TEXT PRIMARY KEY,
		ORDER_ID TEXT NOT NULL,
		PIZZA_ID TEXT NOT NULL,
		PIZZA_NAME TEXT NOT NULL,
		QUANTITY INTEGER NOT NULL,
		UNIT_PRICE TEXT NOT NULL,
		CURRENCY TEXT NOT NULL,
		SUBTOTAL TEXT NOT NULL,
		CREATED_AT TEXT NOT NULL,
		UPDATED_AT TEXT NOT NULL
	)`,
	tableCustomers: `CREATE TABLE IF NOT EXISTS %s (
		ID TEXT PRIMARY KEY,
		FIRST_NAME TEXT NOT NULL,
		LAST_NAME TEXT NOT NULL,
		EMAIL TEXT NOT NULL,
		PHONE_NUMBER TEXT NOT NULL,
		DEFAULT_STREET TEXT,
		DEFAULT_CITY TEXT,
		DEFAULT_STATE TEXT,
		DEFAULT_ZIPCODE TEXT,
		DEFAULT_COUNTRY TEXT,
		IS_ACTIVE INTEGER NOT NULL,
		CREATED_AT TEXT NOT NULL,
		UPDATED_AT TEXT NOT NULL
	)`,
	tablePizzas: `CREATE TABLE IF NOT EXISTS %s (
		ID TEXT PRIMARY KEY,
		NAME TEXT NOT NULL,
		DESCRIPTION TEXT NOT NULL,
		BASE_PRICE TEXT NOT NULL,
		CURRENCY TEXT NOT NULL,
		SIZE TEXT NOT NULL,
		IS_AVAILABLE INTEGER NOT NULL,
		CREATED_AT TEXT NOT NULL,
		UPDATED_AT TEXT NOT NULL
	)`,
	tableDeliveryPersons: `CREATE TABLE IF NOT EXISTS %s (
		ID TEXT PRIMARY KEY,
		FIRST_NAME TEXT NOT NULL,
		LAST_NAME TEXT NOT NULL,
		PHONE_NUMBER TEXT NOT NULL,
		VEHICLE_PLATE TEXT NOT NULL,
		IS_AVAILABLE INTEGER NOT NULL,
		IS_ACTIVE INTEGER NOT NULL,
		CREATED_AT TEXT NOT NULL,
		UPDATED_AT TEXT NOT NULL
	)`,
	tablePayments: `CREATE TABLE IF NOT EXISTS %s (
		ID TEXT PRIMARY KEY,
		ORDER_ID TEXT NOT NULL,
		AMOUNT TEXT NOT NULL,
		CURRENCY TEXT NOT NULL,
		METHOD TEXT NOT NULL,
		STATUS TEXT NOT NULL,
		TRANSACTION_ID TEXT,
		COMPLETED_AT TEXT,
		CREATED_AT TEXT NOT NULL,
		UPDATED_AT TEXT NOT NULL
	)`,
}

// EnsureSchema creates the six tables when they are missing. Production runs
// against a pre-provisioned store and never needs this; it exists for local
// development and tests against the embedded store.
func EnsureSchema(ctx context.Context, store *record.Store) error {
	conn, err := store.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	for table, stmt := range ddl {
		if _, err := conn.Execute(ctx, fmt.Sprintf(stmt, qualify(store.Schema(), table)), nil); err != nil {
			return err
		}
	}

	return nil
}

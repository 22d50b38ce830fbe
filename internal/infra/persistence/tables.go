// Package persistence implements the domain repositories and the unit of work
// on top of the legacy record store. Statements use the store's original table
// and column names; the namespace prefix comes from configuration.
package persistence

// Legacy table names. The store was provisioned in Spanish; the names are part
// of its on-disk contract and must not be translated.
const (
	tableOrders          = "PEDIDOS"
	tableOrderItems      = "PEDIDOS_DET"
	tableCustomers       = "CLIENTES"
	tablePizzas          = "PIZZAS"
	tableDeliveryPersons = "REPARTIDORES"
	tablePayments        = "PAGOS"
)

// qualify prefixes a table name with the configured namespace, e.g.
// "PIZZALIB.PEDIDOS". An empty namespace leaves the name bare, which is what
// the embedded store used in tests expects.
func qualify(schema, table string) string {
	if schema == "" {
		return table
	}

	return schema + "." + table
}

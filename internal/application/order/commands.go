package order

// Command names routed by the command bus
const (
	CommandNameCreateOrder       = "order.create"
	CommandNameUpdateOrderStatus = "order.update_status"
)

// CreateOrderCommand places a new order with a caller-chosen id
type CreateOrderCommand struct {
	ID         string
	ProductID  string
	Quantity   int
	Price      float64
	CustomerID string
	SellerID   string
}

// CommandName implements shared.Command
func (CreateOrderCommand) CommandName() string { return CommandNameCreateOrder }

// UpdateOrderStatusCommand moves an order owned by SellerID to Status
type UpdateOrderStatusCommand struct {
	OrderID  string
	SellerID string
	Status   string
}

// CommandName implements shared.Command
func (UpdateOrderStatusCommand) CommandName() string { return CommandNameUpdateOrderStatus }

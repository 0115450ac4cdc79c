package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// OrderRepository handles database operations for the orders and
// order_items tables
type OrderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order with its items. The order row is a single
// insert; item rows follow sequentially and any item failure surfaces as a
// PersistenceError (there is no cross-row transaction).
func (r *OrderRepository) Create(order *models.Order) error {
	query := `
		INSERT INTO orders (
			id, order_reference, customer_name, customer_phone, customer_email,
			total_amount, status, payment_status, payment_method,
			payment_reference, source_platform
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at, updated_at
	`

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		order.ID, order.OrderReference, order.CustomerName, order.CustomerPhone, order.CustomerEmail,
		order.TotalAmount, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.PaymentReference, order.SourcePlatform,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return &models.PersistenceError{Op: "create order", Err: err}
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = order.ID

		_, err := r.db.Exec(`
			INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.ID, item.OrderID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return &models.PersistenceError{Op: "create order item", Err: err}
		}
	}

	return nil
}

// GetByID retrieves an order and its items by ID
func (r *OrderRepository) GetByID(orderID string) (*models.Order, error) {
	query := `
		SELECT id, order_reference, customer_name, customer_phone, customer_email,
			   total_amount, status, payment_status, payment_method,
			   payment_reference, source_platform, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order, err := r.scanOrder(r.db.QueryRow(query, orderID))
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// OrderListFilter declares the filters supported by the admin order
// listing. Each field maps to exactly one operator.
type OrderListFilter struct {
	Status        *models.OrderStatus   // equality
	PaymentStatus *models.PaymentStatus // equality
	CreatedAfter  *time.Time            // >=
	Limit         int                   // LIMIT, defaults to 50
}

// List retrieves orders matching the filter, newest first
func (r *OrderRepository) List(filter OrderListFilter) ([]models.Order, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, order_reference, customer_name, customer_phone, customer_email,
			   total_amount, status, payment_status, payment_method,
			   payment_reference, source_platform, created_at, updated_at
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d
	`, where, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

// UpdateStatus updates the fulfillment status of an order
func (r *OrderRepository) UpdateStatus(orderID string, status models.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, orderID, status)
	if err != nil {
		return &models.PersistenceError{Op: "update order status", Err: err}
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ExpireStalePending cancels orders that have waited for electronic payment
// longer than the cutoff. Returns the number of orders cancelled.
func (r *OrderRepository) ExpireStalePending(cutoff time.Time) (int64, error) {
	query := `
		UPDATE orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE status = 'pending'
		  AND payment_status = 'pending'
		  AND payment_method IN ('mobile_money', 'card')
		  AND created_at < $1
	`

	result, err := r.db.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// getItems retrieves all items for an order
func (r *OrderRepository) getItems(orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.Query(`
		SELECT id, order_id, menu_item_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY name
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// scanOrder scans a single order row
func (r *OrderRepository) scanOrder(row scanner) (*models.Order, error) {
	order := &models.Order{}
	var customerEmail sql.NullString
	var paymentReference sql.NullString
	var sourcePlatform sql.NullString

	err := row.Scan(
		&order.ID, &order.OrderReference, &order.CustomerName, &order.CustomerPhone, &customerEmail,
		&order.TotalAmount, &order.Status, &order.PaymentStatus, &order.PaymentMethod,
		&paymentReference, &sourcePlatform, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if customerEmail.Valid {
		order.CustomerEmail = &customerEmail.String
	}
	if paymentReference.Valid {
		order.PaymentReference = &paymentReference.String
	}
	if sourcePlatform.Valid {
		order.SourcePlatform = &sourcePlatform.String
	}

	return order, nil
}

// scanOrders scans multiple orders from rows
func (r *OrderRepository) scanOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}

	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

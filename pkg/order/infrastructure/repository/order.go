package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/model"
)

// OrderRepository persists the order aggregate in MySQL. The order row and
// its item rows are written in one transaction, so the aggregate write is
// atomic; the catalog reservation calls are explicitly outside it.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ model.OrderRepository = &OrderRepository{}

type orderRow struct {
	ID         string          `db:"id"`
	UserEmail  string          `db:"user_email"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
}

type itemRow struct {
	OrderID  string          `db:"order_id"`
	BookID   string          `db:"book_id"`
	Quantity int             `db:"quantity"`
	Price    decimal.Decimal `db:"price"`
	Position int             `db:"position"`
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *OrderRepository) Create(order *model.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin create order tx")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO orders (id, user_email, total_price, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		order.ID.String(), order.UserEmail, order.TotalPrice, string(order.Status), order.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "insert order %s", order.ID)
	}

	for i, item := range order.Items {
		_, err = tx.Exec(
			`INSERT INTO order_items (order_id, book_id, quantity, price, position) VALUES (?, ?, ?, ?, ?)`,
			order.ID.String(), item.BookID.String(), item.Quantity, item.Price, i,
		)
		if err != nil {
			return errors.Wrapf(err, "insert item %d of order %s", i, order.ID)
		}
	}

	return errors.Wrapf(tx.Commit(), "commit order %s", order.ID)
}

func (r *OrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, user_email, total_price, status, created_at FROM orders WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find order %s", id)
	}

	order, err := r.hydrate(row)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) UpdateStatus(order *model.Order) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, string(order.Status), order.ID.String())
	if err != nil {
		return errors.Wrapf(err, "update status of order %s", order.ID)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) FindAll() ([]*model.Order, error) {
	return r.findWhere(`SELECT id, user_email, total_price, status, created_at FROM orders ORDER BY created_at`)
}

func (r *OrderRepository) FindByUserEmail(email string) ([]*model.Order, error) {
	return r.findWhere(`SELECT id, user_email, total_price, status, created_at FROM orders WHERE LOWER(user_email) = LOWER(?) ORDER BY created_at`, email)
}

func (r *OrderRepository) findWhere(query string, args ...interface{}) ([]*model.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}

	orders := make([]*model.Order, 0, len(rows))
	for _, row := range rows {
		order, err := r.hydrate(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *OrderRepository) hydrate(row orderRow) (*model.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "parse order id %q", row.ID)
	}

	var itemRows []itemRow
	err = r.db.Select(&itemRows,
		`SELECT order_id, book_id, quantity, price, position FROM order_items WHERE order_id = ? ORDER BY position`,
		row.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "select items of order %s", row.ID)
	}

	items := make([]model.Item, 0, len(itemRows))
	for _, ir := range itemRows {
		bookID, err := uuid.Parse(ir.BookID)
		if err != nil {
			return nil, errors.Wrapf(err, "parse book id %q", ir.BookID)
		}
		items = append(items, model.Item{BookID: bookID, Quantity: ir.Quantity, Price: ir.Price})
	}

	return &model.Order{
		ID:         id,
		UserEmail:  row.UserEmail,
		TotalPrice: row.TotalPrice,
		Status:     model.OrderStatus(row.Status),
		CreatedAt:  row.CreatedAt,
		Items:      items,
	}, nil
}

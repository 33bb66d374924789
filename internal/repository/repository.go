package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Dan9191/salon-ops/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownCategory is returned when a cost item references a missing category.
	ErrUnknownCategory = errors.New("category does not exist")
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the schema and tables when they do not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func fixedCostColumns() []string {
	var f models.FixedCosts
	fields := f.Fields()
	cols := make([]string, len(fields))
	for i, field := range fields {
		cols[i] = field.Name
	}
	return cols
}

// GetFixedCosts returns the fixed-cost record, or ErrNotFound when none was saved yet.
func (r *Repository) GetFixedCosts(ctx context.Context) (*models.FixedCosts, error) {
	costs := &models.FixedCosts{}
	fields := costs.Fields()
	dest := make([]interface{}, 0, len(fields)+1)
	dest = append(dest, &costs.ID)
	for _, f := range fields {
		dest = append(dest, f.Amount)
	}

	query := fmt.Sprintf(`SELECT id, %s FROM salon.fixed_costs ORDER BY id LIMIT 1`,
		strings.Join(fixedCostColumns(), ", "))
	err := r.db.QueryRowContext(ctx, query).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixed costs: %w", err)
	}
	return costs, nil
}

// SaveFixedCosts updates the single fixed-cost row, creating it on first use.
func (r *Repository) SaveFixedCosts(ctx context.Context, costs *models.FixedCosts) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fields := costs.Fields()
	cols := fixedCostColumns()
	args := make([]interface{}, len(fields))
	for i, f := range fields {
		args[i] = *f.Amount
	}

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM salon.fixed_costs ORDER BY id LIMIT 1 FOR UPDATE`).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		placeholders := make([]string, len(cols))
		for i := range cols {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		query := fmt.Sprintf(`INSERT INTO salon.fixed_costs (%s) VALUES (%s) RETURNING id`,
			strings.Join(cols, ", "), strings.Join(placeholders, ", "))
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("failed to create fixed costs: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to lock fixed costs: %w", err)
	default:
		sets := make([]string, len(cols))
		for i, c := range cols {
			sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
		}
		query := fmt.Sprintf(`UPDATE salon.fixed_costs SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d`,
			strings.Join(sets, ", "), len(cols)+1)
		if _, err := tx.ExecContext(ctx, query, append(args, id)...); err != nil {
			return fmt.Errorf("failed to update fixed costs: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fixed costs: %w", err)
	}
	costs.ID = id
	return nil
}

// ListCategories returns every category ordered for display.
func (r *Repository) ListCategories(ctx context.Context) ([]models.CostCategory, error) {
	query := `
		SELECT id, name, projected_total, sort_order
		FROM salon.cost_categories
		ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CostCategory{}
	for rows.Next() {
		var c models.CostCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.ProjectedTotal, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory retrieves a category by id
func (r *Repository) GetCategory(ctx context.Context, id int64) (*models.CostCategory, error) {
	c := &models.CostCategory{}
	query := `
		SELECT id, name, projected_total, sort_order
		FROM salon.cost_categories
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.ProjectedTotal, &c.SortOrder)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// CreateCategory inserts a category and sets its id
func (r *Repository) CreateCategory(ctx context.Context, c *models.CostCategory) error {
	query := `
		INSERT INTO salon.cost_categories (name, projected_total, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.Name, c.ProjectedTotal, c.SortOrder).Scan(&c.ID); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateCategory overwrites the category identified by c.ID
func (r *Repository) UpdateCategory(ctx context.Context, c *models.CostCategory) error {
	query := `
		UPDATE salon.cost_categories
		SET name = $1, projected_total = $2, sort_order = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.ProjectedTotal, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return expectOneRow(res)
}

// DeleteCategory removes a category together with its items
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM salon.cost_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return expectOneRow(res)
}

// ItemFilter narrows ListCostItems. Nil fields do not filter.
type ItemFilter struct {
	CategoryID *int64
	Status     *models.CostItemStatus
}

const costItemColumns = `id, category_id, description, vendor, amount, status, date`

func scanCostItem(row interface{ Scan(...interface{}) error }, item *models.CostItem) error {
	return row.Scan(&item.ID, &item.CategoryID, &item.Description, &item.Vendor, &item.Amount, &item.Status, &item.Date)
}

// ListCostItems returns the items matching filter ordered by date, then id
func (r *Repository) ListCostItems(ctx context.Context, filter ItemFilter) ([]models.CostItem, error) {
	var conditions []string
	var args []interface{}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + costItemColumns + ` FROM salon.cost_items`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost items: %w", err)
	}
	defer rows.Close()

	items := []models.CostItem{}
	for rows.Next() {
		var item models.CostItem
		if err := scanCostItem(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan cost item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetCostItem retrieves a cost item by id
func (r *Repository) GetCostItem(ctx context.Context, id int64) (*models.CostItem, error) {
	item := &models.CostItem{}
	query := `SELECT ` + costItemColumns + ` FROM salon.cost_items WHERE id = $1`
	err := scanCostItem(r.db.QueryRowContext(ctx, query, id), item)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cost item: %w", err)
	}
	return item, nil
}

// CreateCostItem inserts a cost item and sets its id
func (r *Repository) CreateCostItem(ctx context.Context, item *models.CostItem) error {
	query := `
		INSERT INTO salon.cost_items (category_id, description, vendor, amount, status, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		item.CategoryID, item.Description, item.Vendor, item.Amount, string(item.Status), item.Date,
	).Scan(&item.ID)
	if err != nil {
		return translateItemError("create", err)
	}
	return nil
}

// UpdateCostItem overwrites the cost item identified by item.ID
func (r *Repository) UpdateCostItem(ctx context.Context, item *models.CostItem) error {
	query := `
		UPDATE salon.cost_items
		SET category_id = $1, description = $2, vendor = $3, amount = $4, status = $5, date = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		item.CategoryID, item.Description, item.Vendor, item.Amount, string(item.Status), item.Date, item.ID,
	)
	if err != nil {
		return translateItemError("update", err)
	}
	return expectOneRow(res)
}

// DeleteCostItem removes a cost item
func (r *Repository) DeleteCostItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM salon.cost_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cost item: %w", err)
	}
	return expectOneRow(res)
}

func translateItemError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return ErrUnknownCategory
	}
	return fmt.Errorf("failed to %s cost item: %w", op, err)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

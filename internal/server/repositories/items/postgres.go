package items

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/campusmarket/internal/common"
	"github.com/dmitrijs2005/campusmarket/internal/dbx"
	"github.com/dmitrijs2005/campusmarket/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Image URL lists and tags are stored as jsonb so they round-trip through
// database/sql without driver-specific array types.
const selectColumns = `
	i.id, i.title, i.description, i.price, i.category, i.condition,
	i.images, i.location, i.tags, i.is_sold, i.created_at, i.updated_at,
	u.id, u.name, u.college, u.avatar`

const fromJoin = ` FROM items i JOIN users u ON u.id = i.seller_id`

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) error {
	images, tags, err := encodeLists(item)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO items (id, seller_id, title, description, price, category, condition, images, location, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at
		`

	err = r.db.QueryRowContext(ctx, query,
		item.ID, item.SellerID, item.Title, item.Description, item.Price,
		item.Category, item.Condition, images, item.Location, tags).
		Scan(&item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT` + selectColumns + fromJoin + ` WHERE i.id = $1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) error {
	images, tags, err := encodeLists(item)
	if err != nil {
		return err
	}

	query :=
		`UPDATE items
		 SET title = $2, description = $3, price = $4, category = $5, condition = $6,
		     images = $7, location = $8, tags = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		`

	err = r.db.QueryRowContext(ctx, query,
		item.ID, item.Title, item.Description, item.Price, item.Category,
		item.Condition, images, item.Location, tags).Scan(&item.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkSold(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET is_sold = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error) {
	filter.Normalize()

	where, args := buildWhere(filter)

	var items []models.Item
	var total int

	// Count and page are read in one transaction so the pagination total
	// matches the returned rows.
	err := dbx.WithTx(ctx, r.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		countQuery := `SELECT count(*)` + fromJoin + where
		if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
			return err
		}

		query := `SELECT` + selectColumns + fromJoin + where +
			` ORDER BY ` + orderClause(filter) +
			fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return items, total, nil
}

func buildWhere(filter models.ItemFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Search != "" {
		add(`(i.title ILIKE $%[1]d OR i.description ILIKE $%[1]d)`, "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		add(`i.category = $%d`, filter.Category)
	}
	if filter.Condition != "" {
		add(`i.condition = $%d`, filter.Condition)
	}
	if filter.MinPrice > 0 {
		add(`i.price >= $%d`, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		add(`i.price <= $%d`, filter.MaxPrice)
	}
	if filter.Location != "" {
		add(`i.location ILIKE $%d`, "%"+filter.Location+"%")
	}
	if filter.SellerID != "" {
		add(`i.seller_id = $%d`, filter.SellerID)
	}
	if !filter.IncludeSold {
		conds = append(conds, `NOT i.is_sold`)
	}

	if len(conds) == 0 {
		return ``, nil
	}
	return ` WHERE ` + strings.Join(conds, " AND "), args
}

// orderClause maps the filter's sort field to a real column. The whitelist in
// ItemFilter.Normalize keeps this injection-safe.
func orderClause(filter models.ItemFilter) string {
	column := map[string]string{
		"createdAt": "i.created_at",
		"price":     "i.price",
		"title":     "i.title",
	}[filter.SortBy]

	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable) (*models.Item, error) {
	item := &models.Item{}
	var images, tags []byte

	err := row.Scan(
		&item.ID, &item.Title, &item.Description, &item.Price, &item.Category,
		&item.Condition, &images, &item.Location, &tags, &item.IsSold,
		&item.CreatedAt, &item.UpdatedAt,
		&item.Seller.ID, &item.Seller.Name, &item.Seller.College, &item.Seller.Avatar,
	)
	if err != nil {
		return nil, err
	}

	item.SellerID = item.Seller.ID
	if err := json.Unmarshal(images, &item.Images); err != nil {
		return nil, fmt.Errorf("decoding images: %w", err)
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}

	return item, nil
}

func encodeLists(item *models.Item) ([]byte, []byte, error) {
	images, err := json.Marshal(item.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding images: %w", err)
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tags: %w", err)
	}
	return images, tags, nil
}

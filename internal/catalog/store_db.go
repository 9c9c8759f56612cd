package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, category, description, price, tags, image_url, stock_status
			FROM products
			ORDER BY created_at ASC, id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 32)
		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		row := s.db.QueryRowContext(ctx, `
			SELECT id, name, category, description, price, tags, image_url, stock_status
			FROM products
			WHERE id = $1
		`, id)

		var err error
		p, err = scanProduct(row)
		return err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p Product) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO products (id, name, category, description, price, tags, image_url, stock_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, p.ID, p.Name, p.Category, p.Description, p.Price, tags, p.ImageURL, p.StockStatus)

		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return err
	})
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p Product) (bool, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return false, err
	}

	var n int64
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE products
			SET name = $2, category = $3, description = $4, price = $5,
			    tags = $6, image_url = $7, stock_status = $8
			WHERE id = $1
		`, p.ID, p.Name, p.Category, p.Description, p.Price, tags, p.ImageURL, p.StockStatus)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	return n > 0, err
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	var n int64
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	return n > 0, err
}

func (s *PostgresStore) ListContent(ctx context.Context, kind string) ([]Content, error) {
	var out []Content

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, kind, title, subtitle, image_url, link, position, active
			FROM content
			WHERE kind = $1
			ORDER BY position ASC, id ASC
		`, kind)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Content, 0, 8)
		for rows.Next() {
			var c Content
			if err := rows.Scan(&c.ID, &c.Kind, &c.Title, &c.Subtitle, &c.ImageURL, &c.Link, &c.Position, &c.Active); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) CreateContent(ctx context.Context, c Content) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO content (id, kind, title, subtitle, image_url, link, position, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, c.ID, c.Kind, c.Title, c.Subtitle, c.ImageURL, c.Link, c.Position, c.Active)

		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return err
	})
}

func (s *PostgresStore) UpdateContent(ctx context.Context, c Content) (bool, error) {
	var n int64
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE content
			SET kind = $2, title = $3, subtitle = $4, image_url = $5,
			    link = $6, position = $7, active = $8
			WHERE id = $1
		`, c.ID, c.Kind, c.Title, c.Subtitle, c.ImageURL, c.Link, c.Position, c.Active)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	return n > 0, err
}

func (s *PostgresStore) DeleteContent(ctx context.Context, id string) (bool, error) {
	var n int64
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	return n > 0, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p    Product
		tags []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &tags, &p.ImageURL, &p.StockStatus); err != nil {
		return Product{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return Product{}, err
		}
	}
	return p, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}

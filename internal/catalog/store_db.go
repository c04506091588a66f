package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	productColumns = `id, title, description, price, category, image, rating_rate, rating_count`
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id           BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	price        NUMERIC(12, 2) NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	image        TEXT NOT NULL DEFAULT '',
	rating_rate  DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating_count INTEGER NOT NULL DEFAULT 0
)`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pgx-backed *sql.DB and checks it is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := withTimeout(ctx, pingTimeout, db.PingContext); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if _, err := s.db.ExecContext(ctx, schema); err != nil {
			return errors.Wrap(err, "create products table")
		}
		return nil
	})
}

// SeedIfEmpty inserts products with their own IDs when the table has no rows.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context, products []Product) (bool, error) {
	var seeded bool

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return errors.Wrap(err, "begin")
		}
		defer func() { _ = tx.Rollback() }()

		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
			return errors.Wrap(err, "count products")
		}
		if n > 0 {
			return nil
		}

		for _, p := range products {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO products (`+productColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, p.ID, p.Title, p.Description, priceArg(decimal.NewFromFloat(p.Price)), p.Category, p.Image, p.Rating.Rate, p.Rating.Count); err != nil {
				return errors.Wrapf(err, "insert product %d", p.ID)
			}
		}
		if _, err := tx.ExecContext(ctx, `
			SELECT setval(pg_get_serial_sequence('products', 'id'), COALESCE(MAX(id), 1))
			FROM products
		`); err != nil {
			return errors.Wrap(err, "advance id sequence")
		}

		if err := tx.Commit(); err != nil {
			return errors.Wrap(err, "commit")
		}
		seeded = true
		return nil
	})

	return seeded, err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
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
		return nil, errors.Wrap(err, "list products")
	}
	return out, nil
}

func (s *PostgresStore) Categories(ctx context.Context) ([]string, error) {
	var out []string

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT category
			FROM products
			GROUP BY category
			ORDER BY MIN(id) ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]string, 0, 8)
		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Product, error) {
	return s.queryOne(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
}

func (s *PostgresStore) Create(ctx context.Context, in NewProduct) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	return s.queryOne(ctx, `
		INSERT INTO products (title, description, price, category, image)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING `+productColumns,
		in.Title, in.Description, priceArg(in.Price), in.Category, in.Image)
}

func (s *PostgresStore) Update(ctx context.Context, id int64, p Patch) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}

	var price *string
	if p.Price != nil {
		v := priceArg(*p.Price)
		price = &v
	}

	return s.queryOne(ctx, `
		UPDATE products SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			price       = COALESCE($4::numeric, price),
			category    = COALESCE($5, category),
			image       = COALESCE($6, image)
		WHERE id = $1
		RETURNING `+productColumns,
		id, p.Title, p.Description, price, p.Category, p.Image)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (Product, error) {
	return s.queryOne(ctx, `
		DELETE FROM products
		WHERE id = $1
		RETURNING `+productColumns, id)
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (Product, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		p, err = scanProduct(s.db.QueryRowContext(ctx, query, args...))
		return err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (Product, error) {
	var (
		p     Product
		price decimal.Decimal
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &price, &p.Category, &p.Image, &p.Rating.Rate, &p.Rating.Count); err != nil {
		return Product{}, err
	}
	p.Price = price.InexactFloat64()
	return p, nil
}

func priceArg(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

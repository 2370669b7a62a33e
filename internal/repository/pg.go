package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore implements UnitOfWork over PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
	db   Querier
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, db: pool}
}

// WithinTx runs fn inside a transaction. Nested calls reuse the
// enclosing transaction.
func (s *PgStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&PgStore{db: tx})
	})
}

// ─── categories ─────────────────────────────────────────────

func (s *PgStore) InsertCategory(ctx context.Context, c *model.Category) error {
	const q = `INSERT INTO categories (id, name) VALUES ($1, $2);`
	if _, err := s.db.Exec(ctx, q, c.ID, c.Name); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *PgStore) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	const q = `SELECT id, name FROM categories WHERE id = $1;`
	return scanCategory(s.db.QueryRow(ctx, q, id))
}

func (s *PgStore) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	const q = `SELECT id, name FROM categories WHERE name = $1;`
	return scanCategory(s.db.QueryRow(ctx, q, name))
}

func (s *PgStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT id, name FROM categories ORDER BY name ASC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]model.Category, 0, 16)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// ─── training centers ───────────────────────────────────────

func (s *PgStore) InsertTrainingCenter(ctx context.Context, tc *model.TrainingCenter) error {
	const q = `INSERT INTO training_centers (id, name, address, owner) VALUES ($1, $2, $3, $4);`
	if _, err := s.db.Exec(ctx, q, tc.ID, tc.Name, tc.Address, tc.Owner); err != nil {
		return fmt.Errorf("insert training center: %w", err)
	}
	return nil
}

func (s *PgStore) GetTrainingCenter(ctx context.Context, id uuid.UUID) (*model.TrainingCenter, error) {
	const q = `SELECT id, name, address, owner FROM training_centers WHERE id = $1;`
	return scanTrainingCenter(s.db.QueryRow(ctx, q, id))
}

func (s *PgStore) GetTrainingCenterByName(ctx context.Context, name string) (*model.TrainingCenter, error) {
	const q = `SELECT id, name, address, owner FROM training_centers WHERE name = $1;`
	return scanTrainingCenter(s.db.QueryRow(ctx, q, name))
}

func (s *PgStore) ListTrainingCenters(ctx context.Context) ([]model.TrainingCenter, error) {
	const q = `SELECT id, name, address, owner FROM training_centers ORDER BY name ASC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list training centers: %w", err)
	}
	defer rows.Close()

	out := make([]model.TrainingCenter, 0, 16)
	for rows.Next() {
		var tc model.TrainingCenter
		if err := rows.Scan(&tc.ID, &tc.Name, &tc.Address, &tc.Owner); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func scanTrainingCenter(row pgx.Row) (*model.TrainingCenter, error) {
	var tc model.TrainingCenter
	if err := row.Scan(&tc.ID, &tc.Name, &tc.Address, &tc.Owner); err != nil {
		return nil, notFound(err)
	}
	return &tc, nil
}

// ─── athletes ───────────────────────────────────────────────

const athleteColumns = `
	a.id, a.name, a.cpf, a.age, a.weight, a.height, a.sex, a.created_at,
	a.category_id, a.training_center_id, c.name, tc.name
FROM athletes a
JOIN categories c ON c.id = a.category_id
JOIN training_centers tc ON tc.id = a.training_center_id`

func (s *PgStore) InsertAthlete(ctx context.Context, a *model.Athlete) error {
	const q = `
INSERT INTO athletes (id, name, cpf, age, weight, height, sex, created_at, category_id, training_center_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`
	_, err := s.db.Exec(ctx, q,
		a.ID, a.Name, a.CPF, a.Age, a.Weight, a.Height, a.Sex, a.CreatedAt,
		a.CategoryID, a.TrainingCenterID,
	)
	if err != nil {
		return fmt.Errorf("insert athlete: %w", err)
	}
	return nil
}

func (s *PgStore) GetAthlete(ctx context.Context, id uuid.UUID) (*model.Athlete, error) {
	q := `SELECT` + athleteColumns + ` WHERE a.id = $1;`
	a, err := scanAthlete(s.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *PgStore) ListAthletes(ctx context.Context) ([]model.Athlete, error) {
	q := `SELECT` + athleteColumns + ` ORDER BY a.created_at ASC, a.id ASC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	defer rows.Close()

	out := make([]model.Athlete, 0, 32)
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *PgStore) UpdateAthlete(ctx context.Context, a *model.Athlete) error {
	const q = `
UPDATE athletes
   SET name = $2, age = $3, weight = $4, height = $5, sex = $6
 WHERE id = $1;
`
	tag, err := s.db.Exec(ctx, q, a.ID, a.Name, a.Age, a.Weight, a.Height, a.Sex)
	if err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) DeleteAthlete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM athletes WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAthlete(row pgx.Row) (*model.Athlete, error) {
	var a model.Athlete
	err := row.Scan(
		&a.ID, &a.Name, &a.CPF, &a.Age, &a.Weight, &a.Height, &a.Sex, &a.CreatedAt,
		&a.CategoryID, &a.TrainingCenterID, &a.Category.Name, &a.TrainingCenter.Name,
	)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Package memstore is an in-memory repository.UnitOfWork for tests.
//
// It mirrors the Postgres schema's behavior where the services can
// observe it: unique category and training center names, joined names
// on athlete reads, and all-or-nothing transactions. Failures can be
// injected per operation.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Operation names accepted by FailOn.
const (
	OpInsertCategory       = "InsertCategory"
	OpInsertTrainingCenter = "InsertTrainingCenter"
	OpInsertAthlete        = "InsertAthlete"
	OpGetAthlete           = "GetAthlete"
	OpListAthletes         = "ListAthletes"
	OpUpdateAthlete        = "UpdateAthlete"
	OpDeleteAthlete        = "DeleteAthlete"
	OpGetCategoryByName    = "GetCategoryByName"
	OpGetTrainingCenter    = "GetTrainingCenterByName"
)

// Store is safe for concurrent use. Transactions are serialized.
type Store struct {
	mu       sync.Mutex
	data     *data
	failures map[string]error
	calls    map[string]int
}

func New() *Store {
	return &Store{
		data:     newData(),
		failures: map[string]error{},
		calls:    map[string]int{},
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Calls reports how many times op was invoked, failed calls included.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// AthleteCount is the number of stored athletes.
func (s *Store) AthleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.athletes)
}

// WithinTx runs fn against a snapshot-backed view and restores the
// snapshot if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&tx{s: s}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// locked runs f under the store mutex, as an implicit one-statement
// transaction.
func locked[T any](s *Store, f func(*tx) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(&tx{s: s})
}

func (s *Store) InsertCategory(ctx context.Context, c *model.Category) error {
	_, err := locked(s, func(t *tx) (struct{}, error) { return struct{}{}, t.InsertCategory(ctx, c) })
	return err
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return locked(s, func(t *tx) (*model.Category, error) { return t.GetCategory(ctx, id) })
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	return locked(s, func(t *tx) (*model.Category, error) { return t.GetCategoryByName(ctx, name) })
}

func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	return locked(s, func(t *tx) ([]model.Category, error) { return t.ListCategories(ctx) })
}

func (s *Store) InsertTrainingCenter(ctx context.Context, tc *model.TrainingCenter) error {
	_, err := locked(s, func(t *tx) (struct{}, error) { return struct{}{}, t.InsertTrainingCenter(ctx, tc) })
	return err
}

func (s *Store) GetTrainingCenter(ctx context.Context, id uuid.UUID) (*model.TrainingCenter, error) {
	return locked(s, func(t *tx) (*model.TrainingCenter, error) { return t.GetTrainingCenter(ctx, id) })
}

func (s *Store) GetTrainingCenterByName(ctx context.Context, name string) (*model.TrainingCenter, error) {
	return locked(s, func(t *tx) (*model.TrainingCenter, error) { return t.GetTrainingCenterByName(ctx, name) })
}

func (s *Store) ListTrainingCenters(ctx context.Context) ([]model.TrainingCenter, error) {
	return locked(s, func(t *tx) ([]model.TrainingCenter, error) { return t.ListTrainingCenters(ctx) })
}

func (s *Store) InsertAthlete(ctx context.Context, a *model.Athlete) error {
	_, err := locked(s, func(t *tx) (struct{}, error) { return struct{}{}, t.InsertAthlete(ctx, a) })
	return err
}

func (s *Store) GetAthlete(ctx context.Context, id uuid.UUID) (*model.Athlete, error) {
	return locked(s, func(t *tx) (*model.Athlete, error) { return t.GetAthlete(ctx, id) })
}

func (s *Store) ListAthletes(ctx context.Context) ([]model.Athlete, error) {
	return locked(s, func(t *tx) ([]model.Athlete, error) { return t.ListAthletes(ctx) })
}

func (s *Store) UpdateAthlete(ctx context.Context, a *model.Athlete) error {
	_, err := locked(s, func(t *tx) (struct{}, error) { return struct{}{}, t.UpdateAthlete(ctx, a) })
	return err
}

func (s *Store) DeleteAthlete(ctx context.Context, id uuid.UUID) error {
	_, err := locked(s, func(t *tx) (struct{}, error) { return struct{}{}, t.DeleteAthlete(ctx, id) })
	return err
}

// tx is the unlocked view used while the store mutex is held.
type tx struct {
	s *Store
}

func (t *tx) enter(op string) error {
	t.s.calls[op]++
	return t.s.failures[op]
}

func (t *tx) InsertCategory(_ context.Context, c *model.Category) error {
	if err := t.enter(OpInsertCategory); err != nil {
		return err
	}
	d := t.s.data
	if _, taken := d.categoryByName[c.Name]; taken {
		return uniqueViolation("categories")
	}
	d.categories[c.ID] = *c
	d.categoryByName[c.Name] = c.ID
	d.categoryOrder = append(d.categoryOrder, c.ID)
	return nil
}

func (t *tx) GetCategory(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := t.s.data.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (t *tx) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := t.enter(OpGetCategoryByName); err != nil {
		return nil, err
	}
	id, ok := t.s.data.categoryByName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.GetCategory(ctx, id)
}

func (t *tx) ListCategories(context.Context) ([]model.Category, error) {
	d := t.s.data
	out := make([]model.Category, 0, len(d.categoryOrder))
	for _, id := range d.categoryOrder {
		out = append(out, d.categories[id])
	}
	return out, nil
}

func (t *tx) InsertTrainingCenter(_ context.Context, tc *model.TrainingCenter) error {
	if err := t.enter(OpInsertTrainingCenter); err != nil {
		return err
	}
	d := t.s.data
	if _, taken := d.centerByName[tc.Name]; taken {
		return uniqueViolation("training_centers")
	}
	d.centers[tc.ID] = *tc
	d.centerByName[tc.Name] = tc.ID
	d.centerOrder = append(d.centerOrder, tc.ID)
	return nil
}

func (t *tx) GetTrainingCenter(_ context.Context, id uuid.UUID) (*model.TrainingCenter, error) {
	tc, ok := t.s.data.centers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tc, nil
}

func (t *tx) GetTrainingCenterByName(ctx context.Context, name string) (*model.TrainingCenter, error) {
	if err := t.enter(OpGetTrainingCenter); err != nil {
		return nil, err
	}
	id, ok := t.s.data.centerByName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.GetTrainingCenter(ctx, id)
}

func (t *tx) ListTrainingCenters(context.Context) ([]model.TrainingCenter, error) {
	d := t.s.data
	out := make([]model.TrainingCenter, 0, len(d.centerOrder))
	for _, id := range d.centerOrder {
		out = append(out, d.centers[id])
	}
	return out, nil
}

func (t *tx) InsertAthlete(_ context.Context, a *model.Athlete) error {
	if err := t.enter(OpInsertAthlete); err != nil {
		return err
	}
	d := t.s.data
	if _, ok := d.categories[a.CategoryID]; !ok {
		return foreignKeyViolation("category_id")
	}
	if _, ok := d.centers[a.TrainingCenterID]; !ok {
		return foreignKeyViolation("training_center_id")
	}
	if _, dup := d.athletes[a.ID]; dup {
		return uniqueViolation("athletes")
	}

	stored := *a
	stored.Category = model.CategoryRef{}
	stored.TrainingCenter = model.TrainingCenterRef{}
	d.athletes[a.ID] = stored
	d.athleteOrder = append(d.athleteOrder, a.ID)
	return nil
}

func (t *tx) GetAthlete(_ context.Context, id uuid.UUID) (*model.Athlete, error) {
	if err := t.enter(OpGetAthlete); err != nil {
		return nil, err
	}
	a, ok := t.s.data.athletes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.joined(a), nil
}

func (t *tx) ListAthletes(context.Context) ([]model.Athlete, error) {
	if err := t.enter(OpListAthletes); err != nil {
		return nil, err
	}
	d := t.s.data
	out := make([]model.Athlete, 0, len(d.athleteOrder))
	for _, id := range d.athleteOrder {
		out = append(out, *t.joined(d.athletes[id]))
	}
	return out, nil
}

func (t *tx) UpdateAthlete(_ context.Context, a *model.Athlete) error {
	if err := t.enter(OpUpdateAthlete); err != nil {
		return err
	}
	d := t.s.data
	stored, ok := d.athletes[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = a.Name
	stored.Age = a.Age
	stored.Weight = a.Weight
	stored.Height = a.Height
	stored.Sex = a.Sex
	d.athletes[a.ID] = stored
	return nil
}

func (t *tx) DeleteAthlete(_ context.Context, id uuid.UUID) error {
	if err := t.enter(OpDeleteAthlete); err != nil {
		return err
	}
	d := t.s.data
	if _, ok := d.athletes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.athletes, id)
	for i, v := range d.athleteOrder {
		if v == id {
			d.athleteOrder = append(d.athleteOrder[:i:i], d.athleteOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (t *tx) joined(a model.Athlete) *model.Athlete {
	d := t.s.data
	a.Category = model.CategoryRef{Name: d.categories[a.CategoryID].Name}
	a.TrainingCenter = model.TrainingCenterRef{Name: d.centers[a.TrainingCenterID].Name}
	return &a
}

func uniqueViolation(table string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", table+"_name_key"),
		TableName:      table,
		ConstraintName: table + "_name_key",
	}
}

func foreignKeyViolation(column string) error {
	return &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23503",
		Message:    "insert or update on table \"athletes\" violates foreign key constraint",
		TableName:  "athletes",
		ColumnName: column,
	}
}

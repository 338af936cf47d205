// Package injector registers named batch SQL methods and runs them through
// gorm. The methods generate one multi-row statement per call in the dialect
// of the connected database.
package injector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
)

var ErrMethodNotFound = errors.New("sql method not registered")

type Injector struct {
	mu      sync.RWMutex
	methods map[string]Method
}

func NewInjector(methods ...Method) *Injector {
	inj := &Injector{methods: make(map[string]Method, len(methods))}
	for _, m := range methods {
		inj.Register(m)
	}
	return inj
}

// DefaultInjector carries insertBatch, insertIgnoreBatch and replaceBatch.
func DefaultInjector() *Injector {
	return NewInjector(NewInsertBatch(), NewInsertIgnoreBatch(), NewReplaceBatch())
}

// Register adds m, replacing any method with the same name.
func (i *Injector) Register(m Method) {
	if m == nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.methods[m.Name()] = m
}

func (i *Injector) Method(name string) (Method, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	m, ok := i.methods[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrMethodNotFound)
	}
	return m, nil
}

func (i *Injector) Methods() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	names := make([]string, 0, len(i.methods))
	for name := range i.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mapper executes injected methods for rows of type T.
type Mapper[T any] struct {
	db       *gorm.DB
	injector *Injector
}

func NewMapper[T any](db *gorm.DB, injector *Injector) *Mapper[T] {
	if injector == nil {
		injector = DefaultInjector()
	}
	return &Mapper[T]{db: db, injector: injector}
}

// Exec runs the method registered under name for rows and returns the number
// of rows affected. An empty batch is a no-op.
func (m *Mapper[T]) Exec(ctx context.Context, name string, rows []T) (int64, error) {
	method, err := m.injector.Method(name)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	db := m.db.WithContext(ctx)
	stmt, err := method.Build(db, rows)
	if err != nil {
		return 0, err
	}

	result := db.Exec(stmt.SQL, stmt.Vars...)
	if result.Error != nil {
		return 0, fmt.Errorf("%s: %w", stmt.Method, result.Error)
	}
	return result.RowsAffected, nil
}

func (m *Mapper[T]) InsertBatch(ctx context.Context, rows []T) (int64, error) {
	return m.Exec(ctx, "insertBatch", rows)
}

// InsertIgnoreBatch inserts rows and skips those violating a unique
// constraint. The count excludes skipped rows.
func (m *Mapper[T]) InsertIgnoreBatch(ctx context.Context, rows []T) (int64, error) {
	return m.Exec(ctx, "insertIgnoreBatch", rows)
}

func (m *Mapper[T]) ReplaceBatch(ctx context.Context, rows []T) (int64, error) {
	return m.Exec(ctx, "replaceBatch", rows)
}

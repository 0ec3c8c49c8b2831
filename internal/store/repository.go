// Package store is the Entity Store: a single generic MySQL repository
// driven by per-entity table descriptors. Every operation runs inside the
// transaction carried by the context when there is one.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "ventas/internal/errors"
	"ventas/internal/infrastructure/mysql"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes how an entity maps onto its table. Columns excludes the
// primary key, which is always "id"; Scan reads id followed by Columns and
// Values returns Columns in order.
type Table[T any] struct {
	Name    string
	Entity  string
	Columns []string
	Scan    func(s Scanner, t *T) error
	Values  func(t *T) []any
	ID      func(t *T) int64
	SetID   func(t *T, id int64)
}

type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	FindBy(ctx context.Context, column string, value any) ([]T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

type MySQLRepository[T any] struct {
	db    mysql.Querier
	table Table[T]

	selectQuery string
	insertQuery string
	updateQuery string
	deleteQuery string
}

func NewMySQLRepository[T any](db mysql.Querier, table Table[T]) *MySQLRepository[T] {
	quoted := make([]string, len(table.Columns))
	placeholders := make([]string, len(table.Columns))
	assignments := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		quoted[i] = quote(c)
		placeholders[i] = "?"
		assignments[i] = quote(c) + " = ?"
	}

	return &MySQLRepository[T]{
		db:    db,
		table: table,
		selectQuery: fmt.Sprintf("SELECT `id`, %s FROM %s",
			strings.Join(quoted, ", "), quote(table.Name)),
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quote(table.Name), strings.Join(quoted, ", "), strings.Join(placeholders, ", ")),
		updateQuery: fmt.Sprintf("UPDATE %s SET %s WHERE `id` = ?",
			quote(table.Name), strings.Join(assignments, ", ")),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE `id` = ?", quote(table.Name)),
	}
}

func quote(identifier string) string {
	return "`" + identifier + "`"
}

func (r *MySQLRepository[T]) querier(ctx context.Context) mysql.Querier {
	return mysql.QuerierFromContext(ctx, r.db)
}

func (r *MySQLRepository[T]) notFound(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", r.table.Entity, id))
}

func (r *MySQLRepository[T]) List(ctx context.Context) ([]T, error) {
	return r.query(ctx, r.selectQuery+" ORDER BY `id`")
}

func (r *MySQLRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	row := r.querier(ctx).QueryRowContext(ctx, r.selectQuery+" WHERE `id` = ?", id)
	err := r.table.Scan(row, &entity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s by id: %w", r.table.Entity, err)
	}
	return &entity, nil
}

// FindBy returns every row whose column equals value. Only columns declared
// in the table descriptor are accepted.
func (r *MySQLRepository[T]) FindBy(ctx context.Context, column string, value any) ([]T, error) {
	if !r.hasColumn(column) {
		return nil, fmt.Errorf("%s has no column %q", r.table.Name, column)
	}
	return r.query(ctx, r.selectQuery+" WHERE "+quote(column)+" = ? ORDER BY `id`", value)
}

func (r *MySQLRepository[T]) hasColumn(column string) bool {
	for _, c := range r.table.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (r *MySQLRepository[T]) query(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.table.Name, err)
	}
	defer rows.Close()

	entities := []T{}
	for rows.Next() {
		var entity T
		if err := r.table.Scan(rows, &entity); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.table.Entity, err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.table.Entity, err)
	}

	return entities, nil
}

func (r *MySQLRepository[T]) Create(ctx context.Context, entity *T) error {
	result, err := r.querier(ctx).ExecContext(ctx, r.insertQuery, r.table.Values(entity)...)
	if err != nil {
		return r.constraintError(err, fmt.Errorf("inserting %s: %w", r.table.Entity, err))
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	r.table.SetID(entity, lastInsertID)
	return nil
}

func (r *MySQLRepository[T]) Update(ctx context.Context, entity *T) error {
	id := r.table.ID(entity)
	args := append(r.table.Values(entity), id)

	result, err := r.querier(ctx).ExecContext(ctx, r.updateQuery, args...)
	if err != nil {
		return r.constraintError(err, fmt.Errorf("updating %s: %w", r.table.Entity, err))
	}

	return r.expectRow(result, id)
}

func (r *MySQLRepository[T]) Delete(ctx context.Context, id int64) error {
	result, err := r.querier(ctx).ExecContext(ctx, r.deleteQuery, id)
	if err != nil {
		return r.constraintError(err, fmt.Errorf("deleting %s: %w", r.table.Entity, err))
	}

	return r.expectRow(result, id)
}

// constraintError turns integrity violations into client errors and returns
// wrapped unchanged for anything else.
func (r *MySQLRepository[T]) constraintError(err, wrapped error) error {
	switch {
	case mysql.IsDuplicateEntry(err):
		return apperrors.NewConflictError(fmt.Sprintf("%s already exists", r.table.Entity))
	case mysql.IsMissingReference(err):
		return apperrors.NewValidationError("referenced entity does not exist")
	case mysql.IsReferenced(err):
		return apperrors.NewConflictError(fmt.Sprintf("%s is still referenced by other records", r.table.Entity))
	}
	return wrapped
}

func (r *MySQLRepository[T]) expectRow(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return r.notFound(id)
	}
	return nil
}

package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/metrics"
)

var ErrNotFound = errors.New("record not found")

// uniqueViolation код ошибки Postgres для нарушения уникального индекса
const uniqueViolation = "23505"

// Executor общий интерфейс *sqlx.DB и *sqlx.Tx
type Executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type SQLAdapter struct {
	DB      *sqlx.DB
	exec    Executor
	builder sq.StatementBuilderType
}

func NewSQLAdapter(db *sqlx.DB) *SQLAdapter {
	return &SQLAdapter{
		DB:      db,
		exec:    db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Condition условие WHERE: равенства плюс произвольные выражения
type Condition struct {
	Equal sq.Eq
	Where []sq.Sqlizer
}

func (c Condition) sqlizer() sq.Sqlizer {
	and := sq.And{}
	if len(c.Equal) > 0 {
		and = append(and, c.Equal)
	}
	return append(and, c.Where...)
}

// Create вставляет запись и возвращает ее id
func (a *SQLAdapter) Create(ctx context.Context, entity interface{}, tableName string) (int64, error) {
	data := toMap(entity)
	if len(data) == 0 {
		return 0, fmt.Errorf("no data to insert")
	}

	query, args, err := a.builder.Insert(tableName).SetMap(data).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	defer observe("insert_"+tableName, time.Now())

	var id int64
	if err := a.exec.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	return id, nil
}

// Update обновляет записи и возвращает число затронутых строк
func (a *SQLAdapter) Update(ctx context.Context, tableName string, data map[string]interface{}, condition Condition) (int64, error) {
	query, args, err := a.builder.Update(tableName).
		SetMap(data).
		Where(condition.sqlizer()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	defer observe("update_"+tableName, time.Now())

	res, err := a.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update record: %w", err)
	}

	return res.RowsAffected()
}

// Delete удаляет записи и возвращает число удаленных строк
func (a *SQLAdapter) Delete(ctx context.Context, tableName string, condition Condition) (int64, error) {
	query, args, err := a.builder.Delete(tableName).
		Where(condition.sqlizer()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	defer observe("delete_"+tableName, time.Now())

	res, err := a.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete record: %w", err)
	}

	return res.RowsAffected()
}

func (a *SQLAdapter) List(ctx context.Context, dest interface{}, tableName string, condition Condition, orderBy ...string) error {
	query, args, err := a.builder.Select("*").
		From(tableName).
		Where(condition.sqlizer()).
		OrderBy(orderBy...).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	defer observe("select_"+tableName, time.Now())

	if err := a.exec.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("failed to select records: %w", err)
	}

	return nil
}

func (a *SQLAdapter) Get(ctx context.Context, dest interface{}, tableName string, condition Condition) error {
	query, args, err := a.builder.Select("*").
		From(tableName).
		Where(condition.sqlizer()).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	defer observe("get_"+tableName, time.Now())

	if err := a.exec.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get record: %w", err)
	}

	return nil
}

// Lock берет блокировку FOR UPDATE на строки по условию до конца транзакции.
// Вне WithTx блокировка снимается сразу после запроса.
func (a *SQLAdapter) Lock(ctx context.Context, tableName string, condition Condition) error {
	query, args, err := a.builder.Select("id").
		From(tableName).
		Where(condition.sqlizer()).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lock query: %w", err)
	}

	defer observe("lock_"+tableName, time.Now())

	var ids []int64
	if err := a.exec.SelectContext(ctx, &ids, query, args...); err != nil {
		return fmt.Errorf("failed to lock records: %w", err)
	}
	if len(ids) == 0 {
		return ErrNotFound
	}

	return nil
}

// WithTx выполняет fn в транзакции; ошибка fn откатывает транзакцию
func (a *SQLAdapter) WithTx(ctx context.Context, fn func(tx *SQLAdapter) error) error {
	tx, err := a.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txAdapter := &SQLAdapter{DB: a.DB, exec: tx, builder: a.builder}
	if err := fn(txAdapter); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation сообщает, нарушен ли уникальный индекс
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func observe(method string, start time.Time) {
	metrics.ObserveDBRequest(method, time.Since(start))
}

func toMap(entity interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	val := reflect.ValueOf(entity)

	// Если передали указатель, берем значение
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return result
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() {
			continue
		}

		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		// Удаляем опции тега (например, ",omitempty")
		if commaIdx := strings.Index(tag, ","); commaIdx != -1 {
			tag = tag[:commaIdx]
		}

		// Обрабатываем только не-нулевые значения
		if !field.IsZero() {
			result[tag] = field.Interface()
		}
	}
	return result
}

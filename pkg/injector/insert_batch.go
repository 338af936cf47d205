package injector

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	ErrEmptyBatch = errors.New("batch has no rows")
	ErrNotSlice   = errors.New("batch must be a slice of structs")
	ErrNilRow     = errors.New("batch contains a nil row")
	ErrMixedTypes = errors.New("batch rows do not share one schema")
)

// Statement is a generated SQL string and its bind parameters, row-major.
type Statement struct {
	Method string
	SQL    string
	Vars   []any
}

// Method is an SQL method that can be registered with an Injector.
type Method interface {
	Name() string
	Build(db *gorm.DB, rows any) (Statement, error)
}

// insertBatch renders one multi-row INSERT from a SqlMethod template.
type insertBatch struct {
	sqlMethod SqlMethod
	name      string
}

func newInsertBatch(sqlMethod SqlMethod, name string) *insertBatch {
	return &insertBatch{sqlMethod: sqlMethod, name: name}
}

func NewInsertBatch() Method {
	return newInsertBatch(InsertOne, "insertBatch")
}

// NewInsertIgnoreBatch inserts every row and silently skips rows that already
// exist.
func NewInsertIgnoreBatch() Method {
	return newInsertBatch(InsertIgnoreOne, "insertIgnoreBatch")
}

func NewReplaceBatch() Method {
	return newInsertBatch(ReplaceOne, "replaceBatch")
}

func (m *insertBatch) Name() string { return m.name }

// Build renders the statement for rows, a non-empty slice of structs or
// struct pointers. Auto-increment primary keys, read-only and ignored fields
// are left out; zero auto create/update time fields are filled with now and
// other zero fields with their parsed `default` tag value.
func (m *insertBatch) Build(db *gorm.DB, rows any) (Statement, error) {
	tmpl, err := m.sqlMethod.SQL(db.Dialector.Name())
	if err != nil {
		return Statement{}, err
	}

	elems, err := structValues(rows)
	if err != nil {
		return Statement{}, err
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(elems[0].Addr().Interface()); err != nil {
		return Statement{}, fmt.Errorf("parse schema: %w", err)
	}
	sch := stmt.Schema

	fields := insertableFields(sch)
	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, stmt.Quote(f.DBName))
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(fields)), ",") + ")"
	values := make([]string, 0, len(elems))
	vars := make([]any, 0, len(elems)*len(fields))
	now := db.NowFunc()
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	for _, elem := range elems {
		if elem.Type() != sch.ModelType {
			return Statement{}, fmt.Errorf("%w: %s and %s", ErrMixedTypes, sch.ModelType, elem.Type())
		}
		for _, f := range fields {
			v, zero := f.ValueOf(ctx, elem)
			if zero {
				if ts, ok := autoTime(f, now); ok {
					v = ts
				} else if f.DefaultValueInterface != nil {
					v = f.DefaultValueInterface
				}
			}
			vars = append(vars, v)
		}
		values = append(values, placeholder)
	}

	return Statement{
		Method: m.name,
		SQL:    fmt.Sprintf(tmpl, stmt.Quote(stmt.Table), "("+strings.Join(columns, ",")+")", strings.Join(values, ",")),
		Vars:   vars,
	}, nil
}

func structValues(rows any) ([]reflect.Value, error) {
	rv := reflect.Indirect(reflect.ValueOf(rows))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, ErrNotSlice
	}
	if rv.Len() == 0 {
		return nil, ErrEmptyBatch
	}

	elems := make([]reflect.Value, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				return nil, fmt.Errorf("row %d: %w", i, ErrNilRow)
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return nil, ErrNotSlice
		}
		if !elem.CanAddr() {
			cp := reflect.New(elem.Type()).Elem()
			cp.Set(elem)
			elem = cp
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

func insertableFields(sch *schema.Schema) []*schema.Field {
	fields := make([]*schema.Field, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		if f.DBName == "" || !f.Creatable {
			continue
		}
		if f.PrimaryKey && f.AutoIncrement {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func autoTime(f *schema.Field, now time.Time) (any, bool) {
	kind := f.AutoCreateTime
	if kind == 0 {
		kind = f.AutoUpdateTime
	}
	if kind == 0 {
		return nil, false
	}
	if f.GORMDataType == schema.Time {
		return now, true
	}
	switch kind {
	case schema.UnixNanosecond:
		return now.UnixNano(), true
	case schema.UnixMillisecond:
		return now.UnixMilli(), true
	default:
		return now.Unix(), true
	}
}

package injector

import (
	"errors"
	"fmt"
)

var ErrUnsupportedDialect = errors.New("sql method not supported by dialect")

// SqlMethod is a named statement template with three slots: table, column
// list and values list.
type SqlMethod struct {
	Method    string
	Desc      string
	templates map[string]string
}

var (
	InsertOne = SqlMethod{
		Method: "insert",
		Desc:   "insert rows",
		templates: map[string]string{
			"mysql":     "INSERT INTO %s %s VALUES %s",
			"sqlite":    "INSERT INTO %s %s VALUES %s",
			"postgres":  "INSERT INTO %s %s VALUES %s",
			"sqlserver": "INSERT INTO %s %s VALUES %s",
		},
	}

	// InsertIgnoreOne skips rows that would violate a unique constraint.
	InsertIgnoreOne = SqlMethod{
		Method: "insertIgnore",
		Desc:   "insert rows, ignoring those that already exist",
		templates: map[string]string{
			"mysql":    "INSERT IGNORE INTO %s %s VALUES %s",
			"sqlite":   "INSERT OR IGNORE INTO %s %s VALUES %s",
			"postgres": "INSERT INTO %s %s VALUES %s ON CONFLICT DO NOTHING",
		},
	}

	// ReplaceOne deletes conflicting rows before inserting.
	ReplaceOne = SqlMethod{
		Method: "replace",
		Desc:   "insert rows, replacing those that already exist",
		templates: map[string]string{
			"mysql":  "REPLACE INTO %s %s VALUES %s",
			"sqlite": "INSERT OR REPLACE INTO %s %s VALUES %s",
		},
	}
)

// SQL returns the template for the named gorm dialect.
func (m SqlMethod) SQL(dialect string) (string, error) {
	tmpl, ok := m.templates[dialect]
	if !ok {
		return "", fmt.Errorf("%s on %q: %w", m.Method, dialect, ErrUnsupportedDialect)
	}
	return tmpl, nil
}

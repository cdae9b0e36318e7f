package db

import (
	"gorm.io/gorm"

	"cms-extensions/internal/db/query"
)

// QueryExecutor runs SQL produced by the query package against a gorm handle.
type QueryExecutor struct {
	DB      *gorm.DB
	dialect Dialect
}

// NewQueryExecutor creates a new instance of QueryExecutor. The identifier
// dialect follows the gorm dialector.
func NewQueryExecutor(conn *gorm.DB) *QueryExecutor {
	d := Verbatim
	if conn != nil && conn.Dialector != nil {
		d = dialectFor(conn.Dialector.Name())
	}
	return &QueryExecutor{DB: conn, dialect: d}
}

// SQL returns statement as it will be sent to the database.
func (qe *QueryExecutor) SQL(statement string) string {
	return qe.dialect(statement)
}

// IsFieldInTable checks if a field exists in a given table.
func (qe *QueryExecutor) IsFieldInTable(tableName, fieldName string) (bool, error) {
	var exists bool
	q := `SELECT COUNT(*) > 0 FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = ? AND COLUMN_NAME = ?`
	if err := qe.DB.Raw(q, tableName, fieldName).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

// Find runs a select statement and hydrates dest, which must be a pointer to
// a struct or a slice of structs.
func (qe *QueryExecutor) Find(statement string, dest interface{}) error {
	return qe.DB.Raw(qe.SQL(statement)).Scan(dest).Error
}

// Select executes a raw select query and returns the results.
func (qe *QueryExecutor) Select(statement string) ([]map[string]interface{}, error) {
	rows, err := qe.DB.Raw(qe.SQL(statement)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []map[string]interface{}{}
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	scanArgs := make([]interface{}, len(cols))
	for rows.Next() {
		rowData := make([]interface{}, len(cols))
		for i := range rowData {
			scanArgs[i] = &rowData[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}
		record := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			record[col] = rowData[i]
		}
		results = append(results, record)
	}
	return results, rows.Err()
}

// Count returns the number of rows of table matching filter. A nil or empty
// filter counts the whole table.
func (qe *QueryExecutor) Count(table string, filter query.IFilter) (int64, error) {
	var count int64
	statement := query.NewQueryBuilder().From(table).Where(filter).BuildCount()
	if err := qe.DB.Raw(qe.SQL(statement)).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if a row matching filter exists.
func (qe *QueryExecutor) Exists(table string, filter query.IFilter) (bool, error) {
	var exists bool
	inner := query.NewQueryBuilder().Select("1").From(table).Where(filter).Limit(1).Build()
	if err := qe.DB.Raw(qe.SQL("SELECT EXISTS (" + inner + ")")).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes the rows of table matching filter and reports how many went.
// An empty filter deletes nothing; use RawExec to truncate a table.
func (qe *QueryExecutor) Delete(table string, filter query.IFilter) (int64, error) {
	if filter == nil || filter.ExpressionString() == "" {
		return 0, query.ErrInvalidArgument
	}
	statement := query.NewQueryBuilder().From(table).Where(filter).BuildDelete()
	result := qe.DB.Exec(qe.SQL(statement))
	return result.RowsAffected, result.Error
}

// Transaction executes a set of operations within a database transaction.
func (qe *QueryExecutor) Transaction(txFunc func(tx *QueryExecutor) error) error {
	return qe.DB.Transaction(func(tx *gorm.DB) error {
		return txFunc(&QueryExecutor{DB: tx, dialect: qe.dialect})
	})
}

// RawExec executes a raw SQL command.
func (qe *QueryExecutor) RawExec(statement string, args ...interface{}) error {
	return qe.DB.Exec(statement, args...).Error
}

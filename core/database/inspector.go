package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one live table column. Field and Type are lower case.
type ColumnInfo struct {
	Field      string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// mysqlColumn matches one row of SHOW COLUMNS.
type mysqlColumn struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

// sqliteColumn matches one row of PRAGMA table_info.
type sqliteColumn struct {
	Cid        int
	Name       string
	Type       string
	Notnull    int
	DefaultVal *string `gorm:"column:dflt_value"`
	Pk         int
}

// GetTableColumns returns the live column definitions of tableName. A table
// that does not exist yields no columns on SQLite and an error on MySQL.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == DriverSQLite {
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, r := range rows {
			columns = append(columns, ColumnInfo{
				Field:      strings.ToLower(r.Name),
				Type:       strings.ToLower(r.Type),
				Nullable:   r.Notnull == 0 && r.Pk == 0,
				PrimaryKey: r.Pk > 0,
			})
		}
		return columns, nil
	}

	var rows []mysqlColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for _, r := range rows {
		columns = append(columns, ColumnInfo{
			Field:      strings.ToLower(r.Field),
			Type:       strings.ToLower(r.Type),
			Nullable:   strings.EqualFold(r.Null, "YES"),
			PrimaryKey: strings.EqualFold(r.Key, "PRI"),
		})
	}
	return columns, nil
}

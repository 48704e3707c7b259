package checks

import (
	"fmt"
	"strings"
	"sync"

	"shopify-sync/core/cursor"
	"shopify-sync/core/database"
	"shopify-sync/core/history"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the sync tables with their models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// SyncModels are the gorm models persisted by the sync engine.
func SyncModels() []any {
	return []any{&cursor.Cursor{}, &history.SyncRun{}, &history.SyncStage{}}
}

// CheckSchema verifies the database tables using the gorm models as the
// source of truth. Column types are only compared for fields declaring a
// gorm type.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		actualCols, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		tbl := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}
		for _, field := range s.Fields {
			if field.DBName == "" {
				continue
			}
			actCol, exists := actualMap[field.DBName]
			if !exists {
				tbl.MissingColumns = append(tbl.MissingColumns, field.DBName)
				tbl.Status = "error"
				continue
			}

			expType := strings.ToLower(field.TagSettings["TYPE"])
			if expType != "" && !strings.Contains(actCol.Type, expType) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", field.DBName, expType, actCol.Type))
				tbl.Status = "error"
			}
		}
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}

	return report, nil
}

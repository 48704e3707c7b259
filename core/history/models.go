package history

import "time"

// SyncRun is one recorded pipeline invocation.
type SyncRun struct {
	ID         string      `gorm:"column:id;size:36;primaryKey" json:"id"`
	StartedAt  time.Time   `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt time.Time   `gorm:"column:finished_at" json:"finished_at"`
	OK         bool        `gorm:"column:ok" json:"ok"`
	Stages     []SyncStage `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"stages"`
}

// TableName overrides the table name.
func (SyncRun) TableName() string {
	return "sync_runs"
}

// SyncStage is the recorded outcome of one stage of a run.
type SyncStage struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"-"`
	RunID        string    `gorm:"column:run_id;size:36;index" json:"-"`
	Position     int       `gorm:"column:position" json:"position"`
	Name         string    `gorm:"column:name;size:32" json:"name"`
	Discipline   string    `gorm:"column:discipline;size:16" json:"discipline"`
	OK           bool      `gorm:"column:ok" json:"ok"`
	Error        string    `gorm:"column:error;type:text" json:"error,omitempty"`
	Files        int       `gorm:"column:files" json:"files"`
	Rows         int       `gorm:"column:rows" json:"rows"`
	Mutations    int       `gorm:"column:mutations" json:"mutations"`
	Succeeded    int       `gorm:"column:succeeded" json:"succeeded"`
	Failed       int       `gorm:"column:failed" json:"failed"`
	Skipped      int       `gorm:"column:skipped" json:"skipped"`
	Warnings     int       `gorm:"column:warnings" json:"warnings"`
	Exported     int       `gorm:"column:exported" json:"exported"`
	DeleteFailed int       `gorm:"column:delete_failed" json:"delete_failed"`
	StartedAt    time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt   time.Time `gorm:"column:finished_at" json:"finished_at"`
}

// TableName overrides the table name.
func (SyncStage) TableName() string {
	return "sync_stages"
}

package database

import (
	"time"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks times every query, create, update, delete, and raw statement
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	registrations := []func() error{
		func() error { return cb.Query().Before("gorm:query").Register("metrics:select_before", markStart) },
		func() error {
			return cb.Query().After("gorm:query").Register("metrics:select_after", recordSince("select", recorder))
		},
		func() error { return cb.Create().Before("gorm:create").Register("metrics:insert_before", markStart) },
		func() error {
			return cb.Create().After("gorm:create").Register("metrics:insert_after", recordSince("insert", recorder))
		},
		func() error { return cb.Update().Before("gorm:update").Register("metrics:update_before", markStart) },
		func() error {
			return cb.Update().After("gorm:update").Register("metrics:update_after", recordSince("update", recorder))
		},
		func() error { return cb.Delete().Before("gorm:delete").Register("metrics:delete_before", markStart) },
		func() error {
			return cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordSince("delete", recorder))
		},
		func() error { return cb.Raw().Before("gorm:raw").Register("metrics:raw_before", markStart) },
		func() error {
			return cb.Raw().After("gorm:raw").Register("metrics:raw_after", recordSince("raw", recorder))
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordSince(operation string, recorder MetricsRecorder) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(start), db.Error)
	}
}

// StartDBStatsCollector publishes connection pool stats every interval until the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}

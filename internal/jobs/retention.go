package jobs

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"SellerPulse/internal/config"
	"SellerPulse/internal/logger"
	"SellerPulse/internal/serviceiface"
)

// RetentionService prunes old upload audit rows on a nightly schedule.
type RetentionService struct {
	config map[string]interface{}
	db     *sql.DB
	cron   *cron.Cron
}

func NewRetentionService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &RetentionService{config: cfg, db: db}
}

func (s *RetentionService) Name() string {
	return "retention"
}

func (s *RetentionService) Start() error {
	schedule := config.AuditRetentionSchedule
	if s.config != nil {
		if v, ok := s.config["schedule"].(string); ok && v != "" {
			schedule = v
		}
	}
	days := config.AuditRetentionDays
	if s.config != nil {
		if v, ok := s.config["retention_days"].(int); ok && v > 0 {
			days = v
		}
	}

	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for retention job: %v", err)
	}

	s.cron = cron.New(cron.WithLocation(loc))
	_, err = s.cron.AddFunc(schedule, func() {
		res, err := s.db.Exec(
			`DELETE FROM seller_pulse_upload_audit WHERE created_at < now() - make_interval(days => $1)`,
			days)
		if err != nil {
			auditLog(fmt.Sprintf("Upload audit prune failed: %v", err))
			return
		}
		n, _ := res.RowsAffected()
		auditLog(fmt.Sprintf("Upload audit prune removed %d rows older than %d days", n, days))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %v", err)
	}

	s.cron.Start()
	auditLog("Upload audit retention job scheduled for " + schedule + " (" + config.DefaultTimeZone + ")")
	return nil
}

func (s *RetentionService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func auditLog(msg string) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
		return
	}
	log.Println(msg)
}

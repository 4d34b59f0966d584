package analytics

import (
	"database/sql"
	"log"
)

const createUploadAuditTable = `
CREATE TABLE IF NOT EXISTS seller_pulse_upload_audit (
    id         SERIAL PRIMARY KEY,
    batch_id   TEXT NOT NULL,
    file_type  TEXT NOT NULL,
    filename   TEXT NOT NULL,
    row_count  INT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureAuditTable creates the upload audit table if it is missing.
func EnsureAuditTable(db *sql.DB) error {
	_, err := db.Exec(createUploadAuditTable)
	return err
}

// recordUpload writes one audit row per accepted file. Auditing is best
// effort; a failed insert must not fail the upload.
func recordUpload(db *sql.DB, batchID, fileType, filename string, rows int) {
	if db == nil {
		return
	}
	_, err := db.Exec(
		`INSERT INTO seller_pulse_upload_audit (batch_id, file_type, filename, row_count) VALUES ($1, $2, $3, $4)`,
		batchID, fileType, filename, rows)
	if err != nil {
		log.Println("[Analytics] upload audit insert failed:", err)
	}
}

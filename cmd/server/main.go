package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "societydesk/internal/adapters/email"
	web "societydesk/internal/adapters/http"
	"societydesk/internal/adapters/storage"
	auditStore "societydesk/internal/adapters/storage/audit"
	bookingStore "societydesk/internal/adapters/storage/booking"
	noticeStore "societydesk/internal/adapters/storage/notice"
	residentStore "societydesk/internal/adapters/storage/resident"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Resident records come from a flat JSON file. A missing or malformed
	// file is fatal: the portal cannot run without its residents.
	residentFile := envOrDefault("SOCIETY_RESIDENT_FILE", "residents.json")
	residents, err := residentStore.NewJSONStore(residentFile)
	if err != nil {
		log.Fatalf("failed to load residents: %v", err)
	}

	// Notices and the admin audit trail live in SQLite.
	dbPath := envOrDefault("SOCIETY_DB", "societydesk.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	stores := &web.Stores{
		ResidentStore: residents,
		BookingStore:  bookingStore.NewMemoryStore(),
		NoticeStore:   noticeStore.NewSQLiteStore(db),
		AuditStore:    auditStore.NewSQLiteStore(db),
	}

	adminPassword := envOrDefault("SOCIETY_ADMIN_PASSWORD", "admin123")
	if adminPassword == "admin123" && os.Getenv("SOCIETY_ENV") == "production" {
		log.Println("WARNING: SOCIETY_ADMIN_PASSWORD is the demo default; set a real secret in production")
	}

	// Configure email sender for temp-password delivery
	resendKey := os.Getenv("SOCIETY_RESEND_KEY")
	emailFrom := envOrDefault("SOCIETY_EMAIL_FROM", "Society Desk <noreply@societydesk.local>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		log.Println("Email sender configured (noop; set SOCIETY_RESEND_KEY for real delivery)")
	}

	mux := web.NewMux(stores, adminPassword)

	addr := envOrDefault("SOCIETY_ADDR", ":8080")
	log.Printf("Society Desk %s starting on %s (env=%s, residents=%s)", version, addr, envOrDefault("SOCIETY_ENV", "development"), residentFile)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

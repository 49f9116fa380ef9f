package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"societydesk/internal/adapters/email"
	"societydesk/internal/adapters/http/middleware"
	auditStore "societydesk/internal/adapters/storage/audit"
	bookingStore "societydesk/internal/adapters/storage/booking"
	noticeStore "societydesk/internal/adapters/storage/notice"
	residentStore "societydesk/internal/adapters/storage/resident"
)

// Stores holds all storage dependencies.
type Stores struct {
	ResidentStore residentStore.Store
	BookingStore  bookingStore.Store
	NoticeStore   noticeStore.Store
	AuditStore    auditStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Configured admin secret (set by NewMux)
var adminPassword string

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// loadCSRFKey reads the CSRF secret from SOCIETY_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SOCIETY_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SOCIETY_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SOCIETY_ENV") == "production" {
		log.Fatal("SOCIETY_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SOCIETY_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, adminSecret string) http.Handler {
	stores = s
	adminPassword = adminSecret
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("SOCIETY_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

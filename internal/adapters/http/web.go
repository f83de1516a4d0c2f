package web

import (
	"net/http"
	"time"

	"attendci/internal/adapters/http/middleware"
	accountStore "attendci/internal/adapters/storage/account"
	classStore "attendci/internal/adapters/storage/class"
	enrollmentStore "attendci/internal/adapters/storage/enrollment"
	paymentStore "attendci/internal/adapters/storage/payment"
	studentStore "attendci/internal/adapters/storage/student"
	teacherStore "attendci/internal/adapters/storage/teacher"
	"attendci/internal/adapters/uploads"
	"attendci/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	StudentStore    studentStore.Store
	TeacherStore    teacherStore.Store
	ClassStore      classStore.Store
	EnrollmentStore enrollmentStore.Store
	PaymentStore    paymentStore.Store
}

// Options configures the HTTP adapter.
type Options struct {
	AllowedOrigins []string
	RateLimit      int // requests per second per IP
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global reset-code store instance
var resets *middleware.ResetStore

// Global uploads directory (set by NewMux)
var artifacts *uploads.Dir

// Global email dispatcher (set by NewMux)
var dispatcher *orchestrators.Dispatcher

// timeNow is a variable for testability.
var timeNow = time.Now

// SetProductionCookies marks all cookies Secure. Call before NewMux.
func SetProductionCookies(on bool) {
	middleware.SecureCookies = on
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, dir *uploads.Dir, d *orchestrators.Dispatcher, opts Options) http.Handler {
	stores = s
	artifacts = dir
	dispatcher = d
	sessions = middleware.NewSessionStore()
	resets = middleware.NewResetStore()

	mux := http.NewServeMux()
	registerRoutes(mux)

	rate := opts.RateLimit
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	// Applied inner to outer: RateLimit -> Auth -> CORS -> SecurityHeaders
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CORS(opts.AllowedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

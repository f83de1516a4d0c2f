package web

import (
	"net/http"

	"attendci/internal/adapters/http/middleware"
	"attendci/internal/domain/account"
)

// registerRoutes attaches all endpoints to the mux. Auth context is set by
// the outer middleware chain; per-route gates live here.
func registerRoutes(mux *http.ServeMux) {
	adminOnly := middleware.RequireRole(account.RoleAdmin)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/validate-session", handleValidateSession)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/forgot_password", handleForgotPassword)
	mux.HandleFunc("/reset_password", handleResetPassword)

	// Registration and enrollment (admin)
	mux.Handle("/student_register", adminOnly(http.HandlerFunc(handleStudentRegister)))
	mux.Handle("/teacher_register", adminOnly(http.HandlerFunc(handleTeacherRegister)))
	mux.Handle("/class_register", adminOnly(http.HandlerFunc(handleClassRegister)))
	mux.Handle("/student_enroll", adminOnly(http.HandlerFunc(handleStudentEnroll)))
	mux.Handle("/record_payment", adminOnly(http.HandlerFunc(handleRecordPayment)))

	// Queries
	mux.HandleFunc("/get_classes", handleGetClasses)
	mux.Handle("/get_student_classes", middleware.RequireAuth(http.HandlerFunc(handleGetStudentClasses)))
	mux.Handle("/get_student_profile", middleware.RequireAuth(http.HandlerFunc(handleGetStudentProfile)))
	mux.Handle("/get_payment_history", middleware.RequireAuth(http.HandlerFunc(handleGetPaymentHistory)))
	mux.Handle("/admin/overview", adminOnly(http.HandlerFunc(handleAdminOverview)))

	// Artifacts and health
	mux.HandleFunc("/uploads/", handleUploads)
	mux.HandleFunc("/health", handleHealth)
}

package web

import (
	"errors"
	"net/http"

	"attendci/internal/adapters/http/middleware"
	"attendci/internal/application/orchestrators"
	"attendci/internal/application/projections"
	"attendci/internal/application/validate"
	"attendci/internal/domain/account"
	"attendci/internal/domain/payment"
)

// scopedStudentID resolves which student a query targets. Students always get
// their own ID from the session (username doubles as student ID); staff may
// pass ?studentID= explicitly.
func scopedStudentID(r *http.Request) (string, bool) {
	session, found := middleware.GetSessionFromContext(r.Context())
	if !found {
		return "", false
	}
	if session.Role == account.RoleStudent {
		return session.Username, true
	}
	if id := r.URL.Query().Get("studentID"); id != "" {
		return id, true
	}
	return session.Username, true
}

// handleGetClasses handles GET /get_classes (public).
func handleGetClasses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deps := projections.GetClassesDeps{ClassStore: stores.ClassStore}
	rows, err := projections.QueryGetClasses(r.Context(), deps)
	if err != nil {
		internalError(w, err)
		return
	}
	ok(w, "classes retrieved", rows)
}

// handleGetStudentClasses handles GET /get_student_classes.
func handleGetStudentClasses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	studentID, found := scopedStudentID(r)
	if !found {
		fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	input := projections.GetStudentClassesInput{StudentID: studentID}
	deps := projections.GetStudentClassesDeps{EnrollmentStore: stores.EnrollmentStore}

	rows, err := projections.QueryGetStudentClasses(r.Context(), input, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	ok(w, "enrolled classes retrieved", rows)
}

// handleGetStudentProfile handles GET /get_student_profile.
func handleGetStudentProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	studentID, found := scopedStudentID(r)
	if !found {
		fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	input := projections.GetStudentProfileInput{StudentID: studentID}
	deps := projections.GetStudentProfileDeps{StudentStore: stores.StudentStore}

	profile, err := projections.QueryGetStudentProfile(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, projections.ErrProfileNotFound) {
			fail(w, http.StatusNotFound, err.Error())
			return
		}
		internalError(w, err)
		return
	}
	ok(w, "profile retrieved", profile)
}

// handleGetPaymentHistory handles GET /get_payment_history?all=true|false.
func handleGetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	studentID, found := scopedStudentID(r)
	if !found {
		fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	input := projections.GetPaymentHistoryInput{
		StudentID: studentID,
		All:       r.URL.Query().Get("all") == "true",
	}
	deps := projections.GetPaymentHistoryDeps{PaymentStore: stores.PaymentStore}

	rows, err := projections.QueryGetPaymentHistory(r.Context(), input, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	ok(w, "payment history retrieved", rows)
}

// handleAdminOverview handles GET /admin/overview (Admin).
func handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deps := projections.GetAdminOverviewDeps{
		StudentStore:    stores.StudentStore,
		TeacherStore:    stores.TeacherStore,
		ClassStore:      stores.ClassStore,
		EnrollmentStore: stores.EnrollmentStore,
		PaymentStore:    stores.PaymentStore,
		Now:             timeNow,
	}

	overview, err := projections.QueryGetAdminOverview(r.Context(), deps)
	if err != nil {
		internalError(w, err)
		return
	}
	ok(w, "overview retrieved", overview)
}

// handleRecordPayment handles POST /record_payment (Admin).
func handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		StudentID string  `json:"studentID" validate:"required"`
		ClassID   string  `json:"classID" validate:"required"`
		Amount    float64 `json:"amount" validate:"gte=0"`
		Year      int     `json:"year" validate:"omitempty,gte=2000,lte=2100"`
		Month     int     `json:"month" validate:"omitempty,gte=1,lte=12"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.RecordPaymentInput{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Amount:    req.Amount,
		Year:      req.Year,
		Month:     req.Month,
	}
	deps := orchestrators.RecordPaymentDeps{
		PaymentStore: stores.PaymentStore,
		StudentStore: stores.StudentStore,
		ClassStore:   stores.ClassStore,
		Now:          timeNow,
	}

	result, err := orchestrators.ExecuteRecordPayment(r.Context(), input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrStudentNotFound),
			errors.Is(err, orchestrators.ErrClassNotFound):
			fail(w, http.StatusNotFound, err.Error())
		case errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrInvalidPeriod):
			fail(w, http.StatusBadRequest, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	ok(w, "payment recorded", map[string]any{
		"paymentID": result.PaymentID,
		"amount":    result.Amount,
	})
}

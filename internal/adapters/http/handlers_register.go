package web

import (
	"errors"
	"net/http"

	"attendci/internal/application/orchestrators"
	"attendci/internal/application/validate"
	"attendci/internal/domain/student"
)

// handleStudentRegister handles POST /student_register (Admin).
func handleStudentRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		StudentID    string `json:"studentID" validate:"required,min=1,max=50"`
		FirstName    string `json:"firstName" validate:"required,min=2,max=50"`
		LastName     string `json:"lastName" validate:"required,min=2,max=50"`
		ContactNum   string `json:"contactNum" validate:"required,lkphone"`
		Email        string `json:"email" validate:"required,email"`
		DOB          string `json:"dob" validate:"required,pastdate"`
		Address      string `json:"address"`
		ParentName   string `json:"parentName"`
		ParentTelNum string `json:"parentTelNum" validate:"omitempty,lkphone"`
		Relationship string `json:"relationship"`
		Photo        string `json:"photo"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.RegisterStudentInput{
		StudentID:    req.StudentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactNum:   req.ContactNum,
		Email:        req.Email,
		DOB:          req.DOB,
		Address:      req.Address,
		ParentName:   req.ParentName,
		ParentTelNum: req.ParentTelNum,
		Relationship: req.Relationship,
		PhotoBase64:  req.Photo,
	}
	deps := orchestrators.RegisterStudentDeps{
		StudentStore: stores.StudentStore,
		Artifacts:    artifacts,
		Email:        dispatcher,
	}

	result, err := orchestrators.ExecuteRegisterStudent(r.Context(), input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrStudentIDTaken),
			errors.Is(err, orchestrators.ErrEmailTaken),
			errors.Is(err, orchestrators.ErrUsernameTaken),
			errors.Is(err, orchestrators.ErrContactTaken),
			errors.Is(err, orchestrators.ErrDuplicateKey):
			fail(w, http.StatusConflict, err.Error())
		case isStudentValidationError(err):
			fail(w, http.StatusBadRequest, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	ok(w, "student registered successfully", map[string]any{
		"studentID": req.StudentID,
		"photoPath": result.PhotoPath,
		"qrPath":    result.QRPath,
	})
}

// isStudentValidationError reports whether err is one of the student domain
// validation sentinels.
func isStudentValidationError(err error) bool {
	for _, sentinel := range []error{
		student.ErrEmptyStudentID,
		student.ErrInvalidName,
		student.ErrInvalidEmail,
		student.ErrInvalidPhone,
		student.ErrInvalidDOB,
		student.ErrDOBInFuture,
		student.ErrNoEmailLocal,
		student.ErrEmptyFirstName,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// handleTeacherRegister handles POST /teacher_register (Admin).
func handleTeacherRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		TeacherID     string `json:"teacherID" validate:"required,min=1,max=50"`
		FirstName     string `json:"firstName" validate:"required,min=2,max=50"`
		LastName      string `json:"lastName" validate:"required,min=2,max=50"`
		Subject       string `json:"subject" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		ContactNumber string `json:"contactNumber" validate:"required,lkphone"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.RegisterTeacherInput{
		TeacherID:     req.TeacherID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Subject:       req.Subject,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
	}
	deps := orchestrators.RegisterTeacherDeps{TeacherStore: stores.TeacherStore}

	if err := orchestrators.ExecuteRegisterTeacher(r.Context(), input, deps); err != nil {
		if errors.Is(err, orchestrators.ErrTeacherIDTaken) {
			fail(w, http.StatusConflict, err.Error())
			return
		}
		internalError(w, err)
		return
	}

	ok(w, "teacher registered successfully", map[string]any{"teacherID": req.TeacherID})
}

// handleClassRegister handles POST /class_register (Admin).
func handleClassRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		ClassID      string  `json:"classID" validate:"required,min=1,max=50"`
		ClassName    string  `json:"className" validate:"required"`
		ClassSubject string  `json:"classSubject" validate:"required"`
		ClassBatch   string  `json:"classBatch"`
		ClassPrice   float64 `json:"classPrice" validate:"gte=0"`
		TeacherID    string  `json:"teacherID" validate:"required"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.RegisterClassInput{
		ClassID:      req.ClassID,
		ClassName:    req.ClassName,
		ClassSubject: req.ClassSubject,
		ClassBatch:   req.ClassBatch,
		ClassPrice:   req.ClassPrice,
		TeacherID:    req.TeacherID,
	}
	deps := orchestrators.RegisterClassDeps{
		ClassStore:   stores.ClassStore,
		TeacherStore: stores.TeacherStore,
	}

	if err := orchestrators.ExecuteRegisterClass(r.Context(), input, deps); err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrClassIDTaken):
			fail(w, http.StatusConflict, err.Error())
		case errors.Is(err, orchestrators.ErrTeacherNotFound):
			fail(w, http.StatusNotFound, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	ok(w, "class registered successfully", map[string]any{"classID": req.ClassID})
}

// handleStudentEnroll handles POST /student_enroll (Admin).
func handleStudentEnroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		StudentID string `json:"studentID" validate:"required"`
		ClassID   string `json:"classID" validate:"required"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.EnrollStudentInput{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
	}
	deps := orchestrators.EnrollStudentDeps{
		EnrollmentStore: stores.EnrollmentStore,
		StudentStore:    stores.StudentStore,
		ClassStore:      stores.ClassStore,
		Now:             timeNow,
	}

	result, err := orchestrators.ExecuteEnrollStudent(r.Context(), input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrStudentNotFound),
			errors.Is(err, orchestrators.ErrClassNotFound):
			fail(w, http.StatusNotFound, err.Error())
		case errors.Is(err, orchestrators.ErrAlreadyEnrolled):
			fail(w, http.StatusConflict, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	ok(w, "student enrolled successfully", map[string]any{
		"studentName":  result.StudentName,
		"className":    result.ClassName,
		"registerDate": result.RegisterDate.Format("2006-01-02"),
	})
}

package apply_internship

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
	applyInternship "github.com/m04kA/InternHub-Service/internal/usecase/apply_internship"
)

const (
	msgUnauthorized        = "authentication required"
	msgInvalidInternshipID = "invalid internship ID"
	msgInvalidForm         = "invalid multipart form or file is too large"
	msgMissingCV           = "cv file is required"
	msgInvalidCV           = "cv must be a PDF, DOC or DOCX file within the size limit"
	msgInternshipNotFound  = "internship not found"
	msgInternshipClosed    = "internship is no longer accepting applications"
	msgAlreadyApplied      = "you have already applied to this internship"
	msgInvalidInput        = "invalid application data"
	multipartOverheadBytes = 1 << 20
)

type Handler struct {
	useCase   ApplyInternshipUseCase
	maxCVSize int64
	logger    Logger
}

func NewHandler(useCase ApplyInternshipUseCase, maxCVSize int64, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		maxCVSize: maxCVSize,
		logger:    logger,
	}
}

// Handle POST /api/v1/internships/{id}/apply
// multipart/form-data: cv (file, required), coverLetter (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	internshipID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /internships/{id}/apply - Invalid internship ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInternshipID)
		return
	}

	if err := handlers.ParseMultipart(w, r, h.maxCVSize+multipartOverheadBytes); err != nil {
		h.logger.Warn("POST /internships/{id}/apply - Invalid form: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	cv, err := handlers.FormFile(r, "cv")
	if err != nil {
		h.logger.Warn("POST /internships/{id}/apply - Invalid cv field: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	if cv == nil {
		handlers.RespondBadRequest(w, msgMissingCV)
		return
	}
	defer cv.Close()

	booking, err := h.useCase.Execute(r.Context(), &applyInternship.Request{
		UserID:       userID,
		InternshipID: internshipID,
		CoverLetter:  handlers.FormOptionalString(r, "coverLetter"),
		CV: &applyInternship.File{
			Reader:      cv.File,
			Filename:    cv.Filename,
			Size:        cv.Size,
			ContentType: cv.ContentType,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, applyInternship.ErrInternshipNotFound):
			h.logger.Warn("POST /internships/{id}/apply - Internship not found: internship_id=%d", internshipID)
			handlers.RespondNotFound(w, msgInternshipNotFound)
		case errors.Is(err, applyInternship.ErrInternshipClosed):
			handlers.RespondBadRequest(w, msgInternshipClosed)
		case errors.Is(err, applyInternship.ErrAlreadyApplied):
			h.logger.Warn("POST /internships/{id}/apply - Already applied: user_id=%d, internship_id=%d", userID, internshipID)
			handlers.RespondConflict(w, msgAlreadyApplied)
		case errors.Is(err, applyInternship.ErrInvalidCV):
			handlers.RespondBadRequest(w, msgInvalidCV)
		case errors.Is(err, applyInternship.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /internships/{id}/apply - Failed to apply: user_id=%d, internship_id=%d, error=%v",
				userID, internshipID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internships/{id}/apply - Application submitted: booking_id=%d, user_id=%d, internship_id=%d",
		booking.ID, userID, internshipID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking))
}

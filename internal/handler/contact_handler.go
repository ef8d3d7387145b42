package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/folio/backend/internal/contract"
	"github.com/folio/backend/internal/metrics"
	"github.com/folio/backend/internal/service"
)

// maxBodyBytes caps the size of a contact submission body.
const maxBodyBytes = 64 << 10

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	metrics        metrics.Recorder
}

// NewContactHandler creates a ContactHandler. A nil recorder disables metrics.
func NewContactHandler(contactService service.ContactService, rec metrics.Recorder) *ContactHandler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ContactHandler{contactService: contactService, metrics: rec}
}

// Submit handles POST /api/contact.
// 200 returns the stored record; 400 and 500 return {"message": ...}.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	in, err := contract.Parse(r.Body)
	if err != nil {
		slog.DebugContext(r.Context(), "contact submission rejected", "error", err)
		h.metrics.RecordSubmission(metrics.OutcomeRejected, time.Since(start))
		writeMessage(w, http.StatusBadRequest, contract.MessageInvalidInput)
		return
	}

	msg, err := h.contactService.Submit(r.Context(), in)
	if err != nil {
		if contract.IsValidationError(err) {
			h.metrics.RecordSubmission(metrics.OutcomeRejected, time.Since(start))
			writeMessage(w, http.StatusBadRequest, contract.MessageInvalidInput)
			return
		}
		slog.ErrorContext(r.Context(), "contact submission failed", "error", err)
		h.metrics.RecordSubmission(metrics.OutcomeFailed, time.Since(start))
		writeMessage(w, http.StatusInternalServerError, contract.MessageInternal)
		return
	}

	h.metrics.RecordSubmission(metrics.OutcomePersisted, time.Since(start))
	slog.InfoContext(r.Context(), "contact message stored", "id", msg.ID)
	writeJSON(w, http.StatusOK, msg)
}

// MethodNotAllowed answers any non-POST request to /api/contact.
func (h *ContactHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", contract.SubmitContact.Method)
	writeMessage(w, http.StatusMethodNotAllowed, contract.MessageMethodNotAllowed)
}

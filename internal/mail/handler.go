package mail

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SerikaliMap/serikali-backend/internal/metrics"
	"github.com/google/uuid"
)

// Handler serves POST /mail, the public contact form relay.
type Handler struct {
	Sender Sender
}

type contactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	// Hidden form field; humans never fill it.
	MiddleName string `json:"middleName"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Post validates, spam-checks and relays a contact message, issuing a
// client_id cookie when the caller doesn't have one yet (the rate
// limiter keys on it).
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and message are required")
		return
	}
	if req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Email and message are required")
		return
	}

	if IsSpam(req.Message, req.MiddleName) {
		metrics.MailRejectedTotal.Inc()
		writeError(w, http.StatusBadRequest, "Spam detected")
		return
	}

	if h.Sender == nil {
		log.Println("[mail] no sender configured; dropping contact message")
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	if err := h.Sender.Send(r.Context(), req.Email, "New Form Submission", req.Message); err != nil {
		log.Printf("[mail] send failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	metrics.MailSentTotal.Inc()

	if _, err := r.Cookie("client_id"); err != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     "client_id",
			Value:    uuid.NewString(),
			MaxAge:   int((7 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Email sent",
	})
}

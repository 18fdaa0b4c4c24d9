package mail

import (
	"net/http"
	"testing"
)

func TestNewMailgunSender_UnsetEnv(t *testing.T) {
	t.Setenv("MAILGUN_DOMAIN", "")
	t.Setenv("MAILGUN_API_KEY", "")

	h := &Handler{Sender: NewMailgunSender("contact@serikalimap.co.ke")}
	if h.Sender != nil {
		t.Fatal("Sender should be nil when Mailgun env is unset")
	}

	// A valid message against the unconfigured handler must come back
	// as a 500, never crash the process.
	rec := postJSON(t, h, `{"email":"user@example.com","message":"The Kisumu county page lists the wrong senator."}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestNewMailgunSender_Configured(t *testing.T) {
	t.Setenv("MAILGUN_DOMAIN", "mg.serikalimap.co.ke")
	t.Setenv("MAILGUN_API_KEY", "key-test")

	if NewMailgunSender("contact@serikalimap.co.ke") == nil {
		t.Fatal("expected a sender when Mailgun env is set")
	}
}

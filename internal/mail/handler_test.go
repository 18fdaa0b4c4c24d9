package mail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type mockSender struct {
	calls int
	from  string
	body  string
	err   error
}

func (m *mockSender) Send(ctx context.Context, from, subject, body string) error {
	m.calls++
	m.from = from
	m.body = body
	return m.err
}

func postJSON(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mail", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Post(rec, req)
	return rec
}

func TestPost_Success(t *testing.T) {
	sender := &mockSender{}
	h := &Handler{Sender: sender}

	rec := postJSON(t, h, `{"email":"user@example.com","message":"I found an error on the Kisumu county page."}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if sender.calls != 1 {
		t.Errorf("sender calls = %d, want 1", sender.calls)
	}
	if sender.from != "user@example.com" {
		t.Errorf("from = %q", sender.from)
	}

	// A new client gets a client_id cookie.
	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "client_id" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a client_id cookie to be set")
	}
}

func TestPost_ExistingCookieNotReissued(t *testing.T) {
	h := &Handler{Sender: &mockSender{}}
	req := httptest.NewRequest(http.MethodPost, "/mail",
		strings.NewReader(`{"email":"a@b.co","message":"A perfectly reasonable question."}`))
	req.AddCookie(&http.Cookie{Name: "client_id", Value: "existing"})
	rec := httptest.NewRecorder()
	h.Post(rec, req)

	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie must not be reissued when one is presented")
	}
}

func TestPost_MissingFields(t *testing.T) {
	h := &Handler{Sender: &mockSender{}}
	for _, body := range []string{
		`{}`,
		`{"email":"a@b.co"}`,
		`{"message":"long enough message here"}`,
		`not json`,
	} {
		if rec := postJSON(t, h, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: got %d, want 400", body, rec.Code)
		}
	}
}

func TestPost_SpamRejected(t *testing.T) {
	sender := &mockSender{}
	h := &Handler{Sender: sender}

	cases := []string{
		`{"email":"a@b.co","message":"short"}`,
		`{"email":"a@b.co","message":"buy now at https://spam.example today"}`,
		`{"email":"a@b.co","message":"a normal length message here","middleName":"bot"}`,
	}
	for _, body := range cases {
		if rec := postJSON(t, h, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: got %d, want 400", body, rec.Code)
		}
	}
	if sender.calls != 0 {
		t.Errorf("spam must never reach the sender, calls = %d", sender.calls)
	}
}

func TestPost_SenderFailure(t *testing.T) {
	h := &Handler{Sender: &mockSender{err: errors.New("mailgun down")}}
	rec := postJSON(t, h, `{"email":"a@b.co","message":"a normal length message here"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got %d, want 500", rec.Code)
	}
}

func TestIsSpam(t *testing.T) {
	cases := []struct {
		message, honeypot string
		want              bool
	}{
		{"a perfectly fine message", "", false},
		{"short", "", true},
		{"         padded        ", "", true},
		{"see http://scam.example please", "", true},
		{"see https://scam.example please", "", true},
		{"a perfectly fine message", "filled", true},
	}
	for _, tc := range cases {
		if got := IsSpam(tc.message, tc.honeypot); got != tc.want {
			t.Errorf("IsSpam(%q, %q) = %v, want %v", tc.message, tc.honeypot, got, tc.want)
		}
	}
}

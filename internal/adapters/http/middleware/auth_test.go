package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionSlots(t *testing.T) {
	var s Session
	if !s.Empty() || s.HasResident() {
		t.Error("zero session must be empty")
	}

	s.ResidentID = "R001"
	if s.Empty() || !s.HasResident() {
		t.Error("resident slot must count as populated")
	}

	s = Session{Admin: true}
	if s.Empty() {
		t.Error("admin-only session must not be empty")
	}
	if s.HasResident() {
		t.Error("admin flag alone is not a resident identity")
	}
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := NewSessionStore()

	token, err := store.Create(Session{ResidentID: "R001", ResidentName: "Asha Patel"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	sess, ok := store.Get(token)
	if !ok || sess.ResidentID != "R001" {
		t.Errorf("unexpected session: %+v", sess)
	}

	store.Delete(token)
	if _, ok := store.Get(token); ok {
		t.Error("deleted session must not be retrievable")
	}
}

func TestSessionStore_GetUnknownToken(t *testing.T) {
	store := NewSessionStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("unknown token must miss")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore()
	token, _ := store.Create(Session{ResidentID: "R001"})

	// Backdate past the 24h window.
	store.mu.Lock()
	sess := store.sessions[token]
	sess.CreatedAt = time.Now().Add(-25 * time.Hour)
	store.sessions[token] = sess
	store.mu.Unlock()

	if _, ok := store.Get(token); ok {
		t.Error("expired session must not be retrievable")
	}
}

func TestSessionStore_UpdatePreservesCreatedAt(t *testing.T) {
	store := NewSessionStore()
	token, _ := store.Create(Session{ResidentID: "R001"})
	original, _ := store.Get(token)

	if ok := store.Update(token, Session{ResidentID: "R001", Admin: true}); !ok {
		t.Fatal("update of existing token must succeed")
	}
	updated, _ := store.Get(token)
	if !updated.Admin {
		t.Error("update was not applied")
	}
	if !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Error("update must not extend the session lifetime")
	}

	if ok := store.Update("nope", Session{}); ok {
		t.Error("update of unknown token must fail")
	}
}

func TestAuth_InjectsSessionFromCookie(t *testing.T) {
	store := NewSessionStore()
	token, _ := store.Create(Session{ResidentID: "R001", ResidentName: "Asha Patel"})

	var got Session
	var found bool
	handler := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if !found || got.ResidentID != "R001" {
		t.Errorf("expected session in context, got %+v (found=%v)", got, found)
	}
}

func TestAuth_PassesThroughWithoutCookie(t *testing.T) {
	store := NewSessionStore()

	var found bool
	var status int
	handler := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	status = rec.Code

	if found {
		t.Error("no session must be set without a cookie")
	}
	if status != http.StatusOK {
		t.Error("requests without a session must not be blocked")
	}
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "tok" || !cookies[0].HttpOnly {
		t.Errorf("unexpected cookie: %+v", cookies)
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("expected an expired cookie, got %+v", cookies)
	}
}

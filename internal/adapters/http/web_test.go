package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"societydesk/internal/adapters/http/middleware"
	bookingStore "societydesk/internal/adapters/storage/booking"
	residentStore "societydesk/internal/adapters/storage/resident"
	auditDomain "societydesk/internal/domain/audit"
	bookingDomain "societydesk/internal/domain/booking"
	noticeDomain "societydesk/internal/domain/notice"
	residentDomain "societydesk/internal/domain/resident"
)

var fixedTime = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

// Hashing is expensive, so the test resident is built once.
var (
	seedResidentOnce sync.Once
	seedResident     residentDomain.Resident
)

func testResidentFixture(t *testing.T) residentDomain.Resident {
	t.Helper()
	seedResidentOnce.Do(func() {
		seedResident = residentDomain.Resident{
			ResidentID: "R001",
			Name:       "Asha Patel",
			Phone:      "9876500001",
			Building:   "A",
			Floor:      "3",
			Flat:       "302",
		}
		if err := seedResident.SetPassword("pass1"); err != nil {
			panic(err)
		}
	})
	return seedResident
}

type fakeResidentStore struct {
	residents map[string]residentDomain.Resident
}

func (f *fakeResidentStore) GetByID(_ context.Context, id string) (residentDomain.Resident, error) {
	r, ok := f.residents[id]
	if !ok {
		return residentDomain.Resident{}, residentStore.ErrNotFound
	}
	return r, nil
}

func (f *fakeResidentStore) List(_ context.Context) ([]residentDomain.Resident, error) {
	var out []residentDomain.Resident
	for _, r := range f.residents {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResidentStore) Save(_ context.Context, r residentDomain.Resident) error {
	f.residents[r.ResidentID] = r
	return nil
}

type fakeNoticeStore struct {
	notices []noticeDomain.Notice
}

func (f *fakeNoticeStore) Save(_ context.Context, n noticeDomain.Notice) error {
	f.notices = append(f.notices, n)
	return nil
}

func (f *fakeNoticeStore) GetByID(_ context.Context, id string) (noticeDomain.Notice, error) {
	for _, n := range f.notices {
		if n.ID == id {
			return n, nil
		}
	}
	return noticeDomain.Notice{}, errors.New("notice not found")
}

func (f *fakeNoticeStore) List(_ context.Context) ([]noticeDomain.Notice, error) {
	return append([]noticeDomain.Notice(nil), f.notices...), nil
}

func (f *fakeNoticeStore) Delete(_ context.Context, id string) error {
	for i, n := range f.notices {
		if n.ID == id {
			f.notices = append(f.notices[:i], f.notices[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeAuditStore struct {
	events []auditDomain.Event
}

func (f *fakeAuditStore) Save(_ context.Context, event auditDomain.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditStore) List(_ context.Context, limit int) ([]auditDomain.Event, error) {
	if limit > len(f.events) {
		limit = len(f.events)
	}
	return append([]auditDomain.Event(nil), f.events[:limit]...), nil
}

// fixtures bundles the fakes behind the package globals for one test.
type fixtures struct {
	residents *fakeResidentStore
	bookings  *bookingStore.MemoryStore
	notices   *fakeNoticeStore
	audits    *fakeAuditStore
}

// setupWeb points the package globals at fresh fakes. Handlers are invoked
// directly, without the CSRF and rate-limit middleware the mux applies.
func setupWeb(t *testing.T) *fixtures {
	t.Helper()

	f := &fixtures{
		residents: &fakeResidentStore{residents: map[string]residentDomain.Resident{
			"R001": testResidentFixture(t),
		}},
		bookings: bookingStore.NewMemoryStore(),
		notices:  &fakeNoticeStore{},
		audits:   &fakeAuditStore{},
	}

	templatesDir = "templates"
	stores = &Stores{
		ResidentStore: f.residents,
		BookingStore:  f.bookings,
		NoticeStore:   f.notices,
		AuditStore:    f.audits,
	}
	sessions = middleware.NewSessionStore()
	adminPassword = "admin123"
	timeNow = func() time.Time { return fixedTime }
	t.Cleanup(func() { timeNow = time.Now })

	return f
}

func (f *fixtures) seedBooking(t *testing.T) bookingDomain.Booking {
	t.Helper()
	created, err := f.bookings.Create(context.Background(), bookingDomain.Booking{
		ResidentID:  "R001",
		ServiceKey:  "plumber",
		ServiceName: "Plumber",
		Date:        "2026-03-20",
		Time:        "09:00",
		CreatedAt:   fixedTime,
		Status:      bookingDomain.StatusRequested,
	})
	if err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return created
}

func noticeFixture() noticeDomain.Notice {
	return noticeDomain.Notice{
		ID:        "n-1",
		Title:     "Water outage",
		Body:      "Maintenance on **Tuesday**.\n<script>alert(1)</script>",
		CreatedAt: fixedTime,
	}
}

// postForm builds a form POST the way a browser submits it.
func postForm(target string, form url.Values) *http.Request {
	r := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// withSession attaches a session to the request context, the way the Auth
// middleware would for a valid cookie.
func withSession(r *http.Request, sess middleware.Session) *http.Request {
	return r.WithContext(middleware.ContextWithSession(r.Context(), sess))
}

func residentSession() middleware.Session {
	return middleware.Session{ResidentID: "R001", ResidentName: "Asha Patel"}
}

func adminSession() middleware.Session {
	return middleware.Session{Admin: true}
}

// sessionCookie stores a session and returns the matching browser cookie, for
// handlers that mutate the stored session.
func sessionCookie(t *testing.T, sess middleware.Session) *http.Cookie {
	t.Helper()
	token, err := sessions.Create(sess)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func popFlash(t *testing.T, rec *httptest.ResponseRecorder) middleware.Flash {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != middleware.FlashCookieName || c.Value == "" {
			continue
		}
		data, err := base64.URLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("failed to decode flash cookie: %v", err)
		}
		var f middleware.Flash
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("failed to unmarshal flash cookie: %v", err)
		}
		return f
	}
	t.Fatal("no flash cookie set")
	return middleware.Flash{}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

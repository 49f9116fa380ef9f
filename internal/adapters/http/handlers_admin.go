package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"societydesk/internal/adapters/http/middleware"
	bookingStore "societydesk/internal/adapters/storage/booking"
	"societydesk/internal/application/orchestrators"
	"societydesk/internal/application/projections"
	"societydesk/internal/domain/booking"
	noticeDomain "societydesk/internal/domain/notice"
)

// auditListLimit caps the number of events shown on the audit page.
const auditListLimit = 200

// requireAdmin checks the admin flag, flashing and redirecting to the admin
// landing (which shows the login form) when it is absent.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.Admin {
		middleware.SetFlash(w, middleware.FlashError, "Admin access required.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return middleware.Session{}, false
	}
	return sess, true
}

// handleAdmin handles GET /admin — the booking review list, or an embedded
// login form when the admin flag is absent.
func handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.Admin {
		renderTemplate(w, r, "admin_login.html", nil)
		return
	}

	rows, err := projections.QueryGetAdminBookings(r.Context(), projections.GetAdminBookingsDeps{
		BookingStore:  stores.BookingStore,
		ResidentStore: stores.ResidentStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	var notices []noticeDomain.Notice
	if ns, err := stores.NoticeStore.List(r.Context()); err == nil {
		notices = ns
	}

	renderTemplate(w, r, "admin.html", map[string]any{
		"Rows":     rows,
		"Statuses": booking.ValidStatuses,
		"Notices":  notices,
	})
}

// handleAdminLogin handles POST /admin/login
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteAdminLogin(
		orchestrators.AdminLoginInput{Password: r.FormValue("password")},
		orchestrators.AdminLoginDeps{AdminPassword: adminPassword},
	)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid admin password.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	// Set the admin flag; a resident identity on the same browser session is
	// left untouched.
	if err := mutateSession(w, r, func(s *middleware.Session) { s.Admin = true }); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	middleware.SetFlash(w, middleware.FlashSuccess, "Admin login successful.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminLogout handles POST /admin/logout — clears the admin flag only.
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := mutateSession(w, r, func(s *middleware.Session) { s.Admin = false }); err != nil {
		internalError(w, err)
		return
	}
	middleware.SetFlash(w, middleware.FlashInfo, "Logged out of admin.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminStatus handles POST /admin/status/{bookingId}
func handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	bookingID := strings.TrimPrefix(r.URL.Path, "/admin/status/")
	newStatus := strings.TrimSpace(r.FormValue("status"))

	err := orchestrators.ExecuteUpdateStatus(r.Context(), orchestrators.UpdateStatusInput{
		BookingID: bookingID,
		Status:    newStatus,
	}, orchestrators.UpdateStatusDeps{
		BookingStore: stores.BookingStore,
		AuditStore:   stores.AuditStore,
		Now:          timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrEmptyStatus):
			middleware.SetFlash(w, middleware.FlashError, "Please choose a status.")
		case errors.Is(err, booking.ErrUnknownStatus):
			middleware.SetFlash(w, middleware.FlashError, "Unknown status.")
		case errors.Is(err, bookingStore.ErrNotFound):
			middleware.SetFlash(w, middleware.FlashError, "Booking not found.")
		default:
			slog.Error("status_update_failed", "booking_id", bookingID, "error", err.Error())
			middleware.SetFlash(w, middleware.FlashError, "Could not update the booking. Please try again.")
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess,
		fmt.Sprintf("Booking %s updated to %s.", bookingID, newStatus))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminAudit handles GET /admin/audit
func handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	events, err := stores.AuditStore.List(r.Context(), auditListLimit)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_audit.html", map[string]any{
		"Events": events,
	})
}

// handleAdminNotices handles POST /admin/notices — create an announcement.
func handleAdminNotices(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteCreateNotice(r.Context(), orchestrators.CreateNoticeInput{
		Title: strings.TrimSpace(r.FormValue("title")),
		Body:  r.FormValue("body"),
	}, orchestrators.NoticeDeps{
		NoticeStore: stores.NoticeStore,
		AuditStore:  stores.AuditStore,
	})
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not post the notice: "+err.Error())
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Notice posted.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminNoticeDelete handles POST /admin/notices/{id}/delete
func handleAdminNoticeDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/admin/notices/")
	id := strings.TrimSuffix(rest, "/delete")
	if id == "" || id == rest {
		http.NotFound(w, r)
		return
	}

	err := orchestrators.ExecuteDeleteNotice(r.Context(), id, orchestrators.NoticeDeps{
		NoticeStore: stores.NoticeStore,
		AuditStore:  stores.AuditStore,
	})
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Notice not found.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashInfo, "Notice deleted.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"societydesk/internal/adapters/http/middleware"
	"societydesk/internal/application/orchestrators"
	"societydesk/internal/application/projections"
	"societydesk/internal/domain/booking"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// templatesDir is relative to the repo root; tests run from the package
// directory and point it at "templates" instead.
var templatesDir = "internal/adapters/http/templates"

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"csrfToken":   func() string { return csrf.Token(r) },
		"currentName": func() string { return sess.ResidentName },
		"isLoggedIn":  func() bool { return sess.HasResident() },
		"isAdmin":     func() bool { return sess.Admin },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	if data == nil {
		data = map[string]any{}
	}
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// mutateSession applies a change to the browser's session, creating or
// discarding it as needed so empty sessions are not kept around.
func mutateSession(w http.ResponseWriter, r *http.Request, mutate func(*middleware.Session)) error {
	var sess middleware.Session
	token := ""
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if s, ok := sessions.Get(cookie.Value); ok {
			sess = s
			token = cookie.Value
		}
	}

	mutate(&sess)

	if sess.Empty() {
		if token != "" {
			sessions.Delete(token)
		}
		middleware.ClearSessionCookie(w)
		return nil
	}
	if token != "" {
		sessions.Update(token, sess)
		return nil
	}
	token, err := sessions.Create(sess)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, token)
	return nil
}

// handleIndex handles GET / — the landing page with login and reset forms.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok && sess.HasResident() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "index.html", nil)
}

// handleLogin handles POST /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		ResidentID: r.FormValue("resident_id"),
		Password:   r.FormValue("password"),
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		ResidentStore: stores.ResidentStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrUnknownResident):
			middleware.SetFlash(w, middleware.FlashError, "Invalid Resident ID.")
		case errors.Is(err, orchestrators.ErrWrongPassword):
			middleware.SetFlash(w, middleware.FlashError, "Incorrect password.")
		default:
			middleware.SetFlash(w, middleware.FlashError, "Login failed. Please try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Attach the resident identity; an admin flag on the same browser session
	// is left untouched.
	err = mutateSession(w, r, func(s *middleware.Session) {
		s.ResidentID = result.ResidentID
		s.ResidentName = result.Name
	})
	if err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout handles GET /logout — clears the resident identity only.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := mutateSession(w, r, func(s *middleware.Session) {
		s.ResidentID = ""
		s.ResidentName = ""
	}); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleResetPassword handles POST /reset-password
func handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.ResetPasswordInput{
		ResidentID: r.FormValue("resident_id_reset"),
		Phone:      r.FormValue("phone_reset"),
	}
	temp, err := orchestrators.ExecuteResetPassword(r.Context(), input, orchestrators.ResetPasswordDeps{
		ResidentStore: stores.ResidentStore,
		EmailSender:   emailSender,
		EmailFrom:     emailFromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrPhoneMismatch) {
			middleware.SetFlash(w, middleware.FlashError, "Resident ID and phone do not match.")
		} else {
			slog.Error("reset_password_failed", "error", err.Error())
			middleware.SetFlash(w, middleware.FlashError, "Could not reset the password. Please try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Demo-grade delivery: the temporary password is shown in the flash
	// message in addition to any out-of-band email.
	middleware.SetFlash(w, middleware.FlashInfo,
		fmt.Sprintf("Temporary password for %s is: %s", input.ResidentID, temp))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDashboard handles GET /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.HasResident() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(), sess.ResidentID, projections.GetDashboardDeps{
		ResidentStore: stores.ResidentStore,
		BookingStore:  stores.BookingStore,
		NoticeStore:   stores.NoticeStore,
	}, timeNow())
	if err != nil {
		// Stale session pointing at a resident that no longer loads.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Resident":  result.Resident,
		"Services":  result.Services,
		"TimeSlots": result.TimeSlots,
		"Bookings":  result.Bookings,
		"Notices":   result.Notices,
		"Today":     result.Today,
	})
}

// handleBook handles POST /book
func handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.HasResident() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.CreateBookingInput{
		ResidentID: sess.ResidentID,
		ServiceKey: r.FormValue("service_key"),
		Date:       r.FormValue("date"),
		Time:       r.FormValue("time"),
		Notes:      r.FormValue("notes"),
	}
	created, err := orchestrators.ExecuteCreateBooking(r.Context(), input, orchestrators.CreateBookingDeps{
		BookingStore: stores.BookingStore,
		Now:          timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrMissingFields):
			middleware.SetFlash(w, middleware.FlashError, "Please select service, date and time.")
		case errors.Is(err, booking.ErrInvalidDate):
			middleware.SetFlash(w, middleware.FlashError, "Invalid date.")
		case errors.Is(err, booking.ErrPastDate):
			middleware.SetFlash(w, middleware.FlashError, "Date cannot be in the past.")
		case errors.Is(err, orchestrators.ErrInvalidSlot):
			middleware.SetFlash(w, middleware.FlashError, "Please choose a valid time slot.")
		case errors.Is(err, orchestrators.ErrDuplicateBooking):
			middleware.SetFlash(w, middleware.FlashError, "You already requested this slot for the selected service.")
		default:
			slog.Error("booking_failed", "error", err.Error())
			middleware.SetFlash(w, middleware.FlashError, "Could not create the booking. Please try again.")
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess,
		fmt.Sprintf("Booking requested: %s on %s at %s.", created.ServiceName, created.Date, created.Time))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

package web

import "net/http"

// registerRoutes attaches all handlers to the mux. Handlers check methods
// themselves; paths with trailing slashes carry an ID segment.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/reset-password", handleResetPassword)
	mux.HandleFunc("/dashboard", handleDashboard)
	mux.HandleFunc("/book", handleBook)

	mux.HandleFunc("/admin", handleAdmin)
	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.HandleFunc("/admin/logout", handleAdminLogout)
	mux.HandleFunc("/admin/status/", handleAdminStatus)
	mux.HandleFunc("/admin/audit", handleAdminAudit)
	mux.HandleFunc("/admin/notices", handleAdminNotices)
	mux.HandleFunc("/admin/notices/", handleAdminNoticeDelete)
}

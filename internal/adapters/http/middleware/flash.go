package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// Flash severity levels.
const (
	FlashError   = "error"
	FlashSuccess = "success"
	FlashInfo    = "info"
)

// FlashCookieName is the cookie carrying the one-shot flash message.
const FlashCookieName = "society_flash"

// Flash is a transient message shown once after a redirect.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SetFlash stores a one-shot flash message in a cookie.
// POST: The next page render pops and displays the message
func SetFlash(w http.ResponseWriter, level, message string) {
	data, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// PopFlash reads and clears the flash cookie.
// POST: The cookie is expired on the response; returns false if none was set
func PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return Flash{}, false
	}
	return f, true
}

package env

import (
	"net/url"
	"strings"
)

// RedactSecret masks a secret, keeping only the first and last
// four characters of long values.
func RedactSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

// RedactURL masks the password and any token query parameter of a
// URL so it can be logged.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			u.User = url.UserPassword(
				u.User.Username(), RedactSecret(password),
			)
		}
	}
	if q := u.Query(); q.Has("token") {
		q.Set("token", RedactSecret(q.Get("token")))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

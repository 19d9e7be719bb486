package steam

import "net/http"

// Session is the trade-session capability injected into the client: the web
// API key plus the community session material. Obtaining and refreshing these
// happens outside this process; the client only consumes them.
type Session struct {
	APIKey      string
	AccessToken string
	SessionID   string
}

// Cookies returns the community cookies the accept endpoint requires.
func (s Session) Cookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: "steamLoginSecure", Value: s.AccessToken},
		{Name: "sessionid", Value: s.SessionID},
	}
}

package config

// Steam holds the web API key plus the session material handed to the trade
// session. Login and token refresh are outside this process.
type Steam struct {
	APIKey       string `env:"STEAM_API_KEY,required" json:"-"`
	AccessToken  string `env:"STEAM_ACCESS_TOKEN,required" json:"-"`
	SessionID    string `env:"STEAM_SESSION_ID" json:"-"`
	APIBaseURL   string `env:"STEAM_API_BASE_URL" envDefault:"https://api.steampowered.com"`
	CommunityURL string `env:"STEAM_COMMUNITY_URL" envDefault:"https://steamcommunity.com"`
}

package dto

type AddServerRequest struct {
	ServerID        string   `json:"serverId" binding:"required"`
	ServerName      string   `json:"serverName" binding:"required"`
	ServerIcon      string   `json:"serverIcon"`
	ScanAllChannels *bool    `json:"scanAllChannels"`
	IgnoredChannels []string `json:"ignoredChannels"`
}

// UpdateServerRequest is a partial update; nil fields are left unchanged
type UpdateServerRequest struct {
	ServerName      *string   `json:"serverName"`
	ServerIcon      *string   `json:"serverIcon"`
	ScanAllChannels *bool     `json:"scanAllChannels"`
	IgnoredChannels *[]string `json:"ignoredChannels"`
	IsActive        *bool     `json:"isActive"`
}

type AvailableServer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	IconURL string `json:"iconUrl,omitempty"`
}

package types

// FontRecord is one entry in the open-source font catalog: a display name,
// the glob patterns that match installed-font names, and where to get it.
type FontRecord struct {
	Name        string   `json:"name"`
	Patterns    []string `json:"patterns"`
	Homepage    string   `json:"homepage"`
	Download    string   `json:"download"`
	License     string   `json:"license"`
	Description string   `json:"description"`
}

// UpdateInfo is the outcome of checking one installed font against its
// upstream releases.
type UpdateInfo struct {
	CurrentVersion string `json:"current_version"`
	LatestVersion  string `json:"latest_version"`
	DownloadURL    string `json:"download_url"`
	HasUpdate      bool   `json:"has_update"`
}

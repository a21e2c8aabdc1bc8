package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	goversion "github.com/hashicorp/go-version"

	"github.com/stylesmith/stylesmith/pkg/types"
)

// Remote databases. The primary mirrors this project's bundled catalog; the
// community one is braver/programmingfonts, adapted on the fly.
const (
	remoteDBURL    = "https://cdn.jsdelivr.net/gh/stylesmith/stylesmith@main/internal/catalog/data/opensource_fonts.json"
	communityDBURL = "https://cdn.jsdelivr.net/gh/braver/programmingfonts@master/fonts.json"

	fetchTimeout = 5 * time.Second
)

// UpdateChecker fetches remote catalog data and upstream release info.
// Every network path fails soft: a nil result means "no data", never an
// aborted pipeline.
type UpdateChecker struct {
	client  *http.Client
	baseURL string // overridable for tests; "" means the real endpoints
	cached  *Catalog
}

// NewUpdateChecker builds a checker with a pooled client and the fixed
// short timeout.
func NewUpdateChecker() *UpdateChecker {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = fetchTimeout
	return &UpdateChecker{client: client}
}

// FetchRemoteCatalog downloads and merges the remote databases. Returns nil
// when neither endpoint responded; callers fall back to the embedded data.
func (u *UpdateChecker) FetchRemoteCatalog() *Catalog {
	if u.cached != nil {
		return u.cached
	}

	primary := u.fetchJSON(remoteDBURL)
	community := u.fetchJSON(communityDBURL)
	if primary == nil && community == nil {
		return nil
	}

	base := Load(primary)
	if community != nil {
		base = base.Merge(adaptCommunityDB(community))
	}
	u.cached = base
	return base
}

func (u *UpdateChecker) fetchJSON(url string) []byte {
	resp, err := u.client.Get(url)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil
	}
	return body
}

// adaptCommunityDB converts the programmingfonts shape (map of slug →
// entry) into catalog records with heuristic patterns.
func adaptCommunityDB(raw []byte) *Catalog {
	var entries map[string]struct {
		Name        string `json:"name"`
		Website     string `json:"website"`
		License     string `json:"license"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Load(nil)
	}

	doc := catalogDoc{}
	for slug, info := range entries {
		name := info.Name
		if name == "" {
			name = slug
		}
		doc.Fonts = append(doc.Fonts, types.FontRecord{
			Name: name,
			Patterns: []string{
				strings.ToLower(name) + "*",
				strings.ToLower(strings.ReplaceAll(name, " ", "")) + "*",
			},
			Homepage:    info.Website,
			Download:    info.Website,
			License:     info.License,
			Description: info.Description,
		})
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return Load(nil)
	}
	return Load(out)
}

var githubRepo = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s#?]+)`)

// CheckFontUpdate compares an installed font's version against the latest
// GitHub release of its catalog entry. Returns nil when the entry has no
// GitHub repo or the API is unreachable.
func (u *UpdateChecker) CheckFontUpdate(rec types.FontRecord, currentVersion string) *types.UpdateInfo {
	slug := extractGitHubRepo(rec)
	if slug == "" {
		return nil
	}

	latestTag, downloadURL, err := u.fetchLatestRelease(slug)
	if err != nil {
		return nil
	}

	info := &types.UpdateInfo{
		CurrentVersion: currentVersion,
		LatestVersion:  latestTag,
		DownloadURL:    downloadURL,
	}
	if info.CurrentVersion == "" {
		info.CurrentVersion = "unknown"
		return info
	}

	cur, errCur := goversion.NewVersion(cleanVersion(currentVersion))
	latest, errLatest := goversion.NewVersion(cleanVersion(latestTag))
	if errCur == nil && errLatest == nil {
		info.HasUpdate = latest.GreaterThan(cur)
	} else {
		// Unparseable versions fall back to string inequality.
		info.HasUpdate = cleanVersion(currentVersion) != cleanVersion(latestTag)
	}
	return info
}

func (u *UpdateChecker) fetchLatestRelease(slug string) (tag, url string, err error) {
	api := "https://api.github.com/repos/" + slug + "/releases/latest"
	if u.baseURL != "" {
		api = u.baseURL + "/repos/" + slug + "/releases/latest"
	}

	req, err := http.NewRequest(http.MethodGet, api, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", "stylesmith-updater")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("release lookup for %s returned %d", slug, resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", err
	}
	return release.TagName, release.HTMLURL, nil
}

func extractGitHubRepo(rec types.FontRecord) string {
	for _, url := range []string{rec.Homepage, rec.Download} {
		if m := githubRepo.FindStringSubmatch(url); m != nil {
			return m[1] + "/" + m[2]
		}
	}
	return ""
}

// cleanVersion strips "Version ", "v" and whitespace so font name-table
// strings and git tags compare on equal footing.
func cleanVersion(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	s = strings.TrimPrefix(s, "version")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")
	return strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
}

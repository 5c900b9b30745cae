package links

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const starsPerPage = 100

// githubAPIBase is overridable in tests.
var githubAPIBase = "https://api.github.com"

type starredRepo struct {
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
}

// FetchGithubStars fetches every repository starred by username from the
// public GitHub API, following pagination.
func FetchGithubStars(client *http.Client, username string) ([]Link, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var stars []Link
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/users/%s/starred?per_page=%d&page=%d",
			githubAPIBase, username, starsPerPage, page)
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "mystuff-cli")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			return nil, fmt.Errorf("github user not found: %s", username)
		case http.StatusForbidden:
			return nil, fmt.Errorf("github API rate limit exceeded, try again later")
		default:
			return nil, fmt.Errorf("github API returned %s", resp.Status)
		}

		var repos []starredRepo
		if err := json.Unmarshal(body, &repos); err != nil {
			return nil, fmt.Errorf("decoding github response: %w", err)
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			stars = append(stars, Link{
				URL:         r.HTMLURL,
				Title:       r.FullName,
				Description: r.Description,
				Tags:        []string{username, "github"},
			})
		}
		if len(repos) < starsPerPage {
			break
		}
	}
	return stars, nil
}

// ImportStars merges fetched stars into the store, skipping URLs that are
// already present. It returns how many links were added.
func (s *Store) ImportStars(stars []Link) (int, error) {
	existing, err := s.Load()
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		seen[l.URL] = struct{}{}
	}

	added := 0
	for _, star := range stars {
		if _, ok := seen[star.URL]; ok {
			continue
		}
		star.Timestamp = s.Now().Format(time.RFC3339)
		existing = append(existing, star)
		seen[star.URL] = struct{}{}
		added++
	}
	if added > 0 {
		if err := s.Save(existing); err != nil {
			return 0, err
		}
	}
	return added, nil
}

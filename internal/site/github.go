package site

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// githubAPIBase is overridable in tests.
var githubAPIBase = "https://api.github.com"

// Repo is a GitHub repository shown on the index page.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"html_url"`
	Language    string `json:"language"`
}

// fetchRepos looks up the configured repositories one by one. Failures are
// logged and skipped so a missing repo never blocks site generation.
func (g *Generator) fetchRepos() []Repo {
	var repos []Repo
	for _, name := range g.Config.Repositories {
		repo, err := fetchRepo(g.Client, g.Config.GithubUsername, name)
		if err != nil {
			g.logf("skipping repo %s: %v", name, err)
			continue
		}
		repos = append(repos, repo)
	}
	return repos
}

func fetchRepo(client *http.Client, username, name string) (Repo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", githubAPIBase, username, name)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Repo{}, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "mystuff-cli")

	resp, err := client.Do(req)
	if err != nil {
		return Repo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Repo{}, fmt.Errorf("github API returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Repo{}, err
	}
	var repo Repo
	if err := json.Unmarshal(body, &repo); err != nil {
		return Repo{}, err
	}
	return repo, nil
}

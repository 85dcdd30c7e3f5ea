package gitrange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.skia.org/multisection/go/core"
	"go.skia.org/multisection/go/skerr"
	"go.skia.org/multisection/go/sklog"
)

// gitilesXSSPrefix guards every Gitiles JSON response against being parsed
// as executable JavaScript if fetched directly by a browser; it must be
// stripped before decoding.
var gitilesXSSPrefix = []byte(")]}'\n")

type logEntry struct {
	Commit string `json:"commit"`
}

type logResponse struct {
	Log  []logEntry `json:"log"`
	Next string     `json:"next"`
}

// GitilesEnumerator resolves a commit range via a Gitiles HTTP log
// endpoint, mirroring the host project's Repo.LogLinear: the returned page
// is newest-first and excludes the `first` boundary, so Commits reverses
// it to oldest-first before returning.
type GitilesEnumerator struct {
	// BaseURL is the repository's Gitiles root, e.g.
	// "https://skia.googlesource.com/skia".
	BaseURL string
	Client  *http.Client
}

// NewGitilesEnumerator returns a GitilesEnumerator. A nil client uses
// http.DefaultClient.
func NewGitilesEnumerator(baseURL string, client *http.Client) *GitilesEnumerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &GitilesEnumerator{BaseURL: baseURL, Client: client}
}

// Commits implements Enumerator.
func (g *GitilesEnumerator) Commits(ctx context.Context, first, last core.CommitId) (core.CommitRange, error) {
	var newestFirst []core.CommitId
	cursor := string(last)
	for {
		page, next, err := g.fetchPage(ctx, string(first), cursor)
		if err != nil {
			return nil, err
		}
		newestFirst = append(newestFirst, page...)
		if next == "" {
			break
		}
		cursor = next
	}

	commits := make(core.CommitRange, len(newestFirst))
	for i, c := range newestFirst {
		commits[len(newestFirst)-1-i] = c
	}
	if len(commits) < 2 {
		return nil, skerr.Wrap(&core.ConfigurationError{
			Message: fmt.Sprintf("commit range %s..%s contains %d commits, need at least 2", first, last, len(commits)),
		})
	}
	sklog.Infof("resolved commit range %s..%s to %d commits", first, last, len(commits))
	return commits, nil
}

func (g *GitilesEnumerator) fetchPage(ctx context.Context, first, cursor string) ([]core.CommitId, string, error) {
	url := fmt.Sprintf("%s/+log/%s..%s?format=JSON", g.BaseURL, first, cursor)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", skerr.Wrap(err)
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, "", skerr.Wrap(&core.ConfigurationError{
			Message: fmt.Sprintf("fetching commit log from %s: %s", url, err),
		})
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", skerr.Wrap(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", skerr.Wrap(&core.ConfigurationError{
			Message: fmt.Sprintf("gitiles returned %d fetching %s", resp.StatusCode, url),
		})
	}
	body = bytes.TrimPrefix(body, gitilesXSSPrefix)

	var parsed logResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, "", skerr.Wrapf(err, "decoding gitiles log response from %s", url)
	}
	page := make([]core.CommitId, len(parsed.Log))
	for i, e := range parsed.Log {
		page[i] = core.CommitId(e.Commit)
	}
	return page, parsed.Next, nil
}

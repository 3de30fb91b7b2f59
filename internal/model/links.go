package model

import (
	"fmt"
	"strings"
)

// shortSHALen is the number of commit hash characters shown in notifications.
const shortSHALen = 7

// Links holds the GitHub coordinates used to build URLs in reports.
type Links struct {
	ServerURL  string
	Repository string
	SHA        string
	RunID      string
	Actor      string
}

func (l Links) baseURL() string {
	return strings.TrimSuffix(l.ServerURL, "/") + "/" + l.Repository
}

// BlobURL returns the URL of the repository tree at the commit.
func (l Links) BlobURL() string {
	return l.baseURL() + "/blob/" + l.SHA
}

// CommitURL returns the URL of the commit page.
func (l Links) CommitURL() string {
	return l.baseURL() + "/commit/" + l.SHA
}

// RunURL returns the URL of the workflow run.
func (l Links) RunURL() string {
	return l.baseURL() + "/actions/runs/" + l.RunID
}

// ShortSHA returns the abbreviated commit hash.
func (l Links) ShortSHA() string {
	if len(l.SHA) <= shortSHALen {
		return l.SHA
	}
	return l.SHA[:shortSHALen]
}

// ExampleURL returns a link to the example's source line at the commit.
func (l Links) ExampleURL(e Example) string {
	return fmt.Sprintf("%s/%s#L%d", l.BlobURL(), e.RelativePath(), e.LineNumber)
}

package navigation

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ContextLevel is the page's semantic scope. Only system, course and module
// pages get a secondary navigation; anything else builds an empty view.
type ContextLevel string

const (
	LevelSystem   ContextLevel = "system"
	LevelCourse   ContextLevel = "course"
	LevelModule   ContextLevel = "module"
	LevelCategory ContextLevel = "category"
	LevelUser     ContextLevel = "user"
	LevelBlock    ContextLevel = "block"
)

func ParseContextLevel(raw string) ContextLevel {
	return ContextLevel(strings.ToLower(strings.TrimSpace(raw)))
}

// PageContext is everything the views need to know about the current request.
type PageContext struct {
	Level ContextLevel

	CourseID         int64
	ModuleID         int64
	SiteHomeCourseID int64
	// ActivityName is the module type (e.g. "quiz"), used to expand
	// module-specific layout keys.
	ActivityName string

	// URL is the URL the page declared for itself; FullURL is the URL that
	// was actually requested. The declared URL wins for active matching.
	URL     string
	FullURL string

	WWWRoot  string
	SiteName string
}

func (p PageContext) ActiveURL() string {
	if strings.TrimSpace(p.URL) != "" {
		return p.URL
	}
	return p.FullURL
}

// IsSiteHome reports whether a course page is the site's front page course.
func (p PageContext) IsSiteHome() bool {
	return p.Level == LevelCourse && p.CourseID == p.SiteHomeCourseID
}

func (p PageContext) CourseHomeURL() string {
	return p.link("/course/view.php", url.Values{"id": {strconv.FormatInt(p.CourseID, 10)}})
}

func (p PageContext) CourseAdminURL() string {
	return p.link("/course/admin.php", url.Values{"courseid": {strconv.FormatInt(p.CourseID, 10)}})
}

func (p PageContext) link(path string, q url.Values) string {
	root := strings.TrimRight(strings.TrimSpace(p.WWWRoot), "/")
	s := root + path
	if len(q) > 0 {
		s += "?" + q.Encode()
	}
	return s
}

// SameURL compares two action URLs. Scheme and host case, default ports, a
// trailing slash and query parameter order are not significant.
func SameURL(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return normalizeURL(a) == normalizeURL(b)
}

func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Host)
	switch {
	case u.Scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	path := u.EscapedPath()
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	q := u.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(path)
	for i, k := range keys {
		vals := q[k]
		sort.Strings(vals)
		for j, v := range vals {
			if i == 0 && j == 0 {
				b.WriteByte('?')
			} else {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

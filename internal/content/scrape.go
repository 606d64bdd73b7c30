package content

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/infodaemon/infoterm/internal/domain"
)

const (
	noAboutText     = "No about text found."
	defaultLocation = "Cyberspace"
)

var (
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Scrape parses an HTML document and extracts a content snapshot. siteURL is
// used for the "site" link and to resolve relative download links.
func Scrape(r io.Reader, siteURL string) (domain.ContentSnapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return domain.ContentSnapshot{}, fmt.Errorf("parse html: %w", err)
	}

	snap := domain.ContentSnapshot{
		About:   scrapeAbout(doc),
		Skills:  scrapeSkills(doc),
		Contact: domain.Contact{Email: scrapeEmail(doc), Location: defaultLocation},
	}
	snap.Projects = scrapeProjects(doc)
	snap.Links = scrapeLinks(doc, siteURL)
	return snap, nil
}

func scrapeAbout(doc *html.Node) string {
	var descs []string
	for _, n := range selectAll(doc, hasClass("hero"), hasClass("top-desc")) {
		if t := cleanText(n); t != "" {
			descs = append(descs, t)
		}
	}
	if len(descs) > 0 {
		return strings.Join(descs, "\n")
	}
	if lead := cleanText(selectFirst(doc, hasClass("hero"), hasClass("lead"))); lead != "" {
		return lead
	}
	if about := cleanText(selectFirst(doc, hasID("about"), hasClass("container"))); about != "" {
		return about
	}
	return noAboutText
}

func scrapeSkills(doc *html.Node) []string {
	skills := []string{}
	for _, card := range selectAll(doc, hasID("skills"), hasClass("card")) {
		var parts []string
		if h := cleanText(selectFirst(card, isTag("h3"))); h != "" {
			parts = append(parts, h)
		}
		if m := cleanText(selectFirst(card, hasClass("meta"))); m != "" {
			parts = append(parts, m)
		}
		skills = append(skills, strings.Join(parts, ": "))
	}
	return skills
}

func scrapeProjects(doc *html.Node) []domain.Project {
	projects := []domain.Project{}
	for _, card := range selectAll(doc, hasID("projects"), hasClass("card")) {
		name := cleanText(selectFirst(card, isTag("h3")))
		if name == "" {
			name = "Untitled"
		}
		href := "#"
		if a := selectFirst(card, hasClass("actions"), isTag("a")); a != nil {
			if v, ok := attr(a, "href"); ok {
				href = v
			}
		}
		keySrc, ok := attr(card, "data-project")
		if !ok || keySrc == "" {
			keySrc = name
		}
		projects = append(projects, domain.Project{
			Key:  Slugify(keySrc),
			Name: name,
			Desc: cleanText(selectFirst(card, hasClass("meta"))),
			URL:  href,
		})
	}
	return projects
}

func scrapeEmail(doc *html.Node) string {
	in := selectFirst(doc, hasID("contact"), func(n *html.Node) bool {
		t, _ := attr(n, "type")
		return isTag("input")(n) && t == "email"
	})
	if in == nil {
		return ""
	}
	if v, _ := attr(in, "value"); v != "" {
		return v
	}
	v, _ := attr(in, "placeholder")
	return v
}

func scrapeLinks(doc *html.Node, siteURL string) []domain.Link {
	var links []domain.Link
	seen := make(map[string]bool)
	add := func(l domain.Link) {
		if seen[l.Key] {
			return
		}
		seen[l.Key] = true
		links = append(links, l)
	}

	add(domain.Link{Key: "site", Label: "Website", URL: siteURL})

	if a := selectFirst(doc, func(n *html.Node) bool {
		_, ok := attr(n, "download")
		return isTag("a")(n) && ok
	}); a != nil {
		if href, _ := attr(a, "href"); href != "" {
			add(domain.Link{Key: "resume", Label: "Resume", URL: resolve(siteURL, href)})
		}
	}

	for _, a := range selectAll(doc, hasID("projects"), hasClass("actions"), isTag("a")) {
		href, _ := attr(a, "href")
		if href == "" || href == "#" {
			continue
		}
		key := KeyFromHost(href, siteURL)
		add(domain.Link{Key: key, Label: strings.ToUpper(key), URL: href})
	}
	return links
}

// Slugify lower-cases s and collapses every run of non-alphanumerics to "-".
func Slugify(s string) string {
	s = nonSlugRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// KeyFromHost derives a short link key from a URL's host: well-known hosts
// get fixed keys, others drop "www." and the top-level domain.
func KeyFromHost(raw, base string) string {
	u, err := url.Parse(resolve(base, raw))
	if err != nil {
		return "link"
	}
	h := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case strings.Contains(h, "github.com"):
		return "gh"
	case strings.Contains(h, "twitter.com"), strings.Contains(h, "x.com"):
		return "tw"
	case strings.Contains(h, "linkedin.com"):
		return "in"
	case strings.Contains(h, "itch.io"):
		return "itch"
	case strings.Contains(h, "youtube.com"), strings.Contains(h, "youtu.be"):
		return "yt"
	}
	labels := strings.Split(h, ".")
	if k := strings.Join(labels[:len(labels)-1], "."); k != "" {
		return k
	}
	return "site"
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func cleanText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

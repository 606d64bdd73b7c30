package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/infodaemon/infoterm/internal/domain"
)

type logSpy struct{ lines []string }

func (l *logSpy) Printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func scrapeFile(t *testing.T, name string) domain.ContentSnapshot {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	snap, err := Scrape(f, "https://infodaemon.dev")
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	return snap
}

func TestScrape_FullPage(t *testing.T) {
	snap := scrapeFile(t, "page.html")

	wantAbout := "Systems tinkerer, terminal enthusiast and part-time netrunner.\nWrites Go by day and shaders by night."
	if snap.About != wantAbout {
		t.Errorf("About = %q, want %q", snap.About, wantAbout)
	}

	wantSkills := []string{"Go: services, CLIs, TUIs", "Graphics: WebGL, shaders", "Infra: Linux, containers, CI"}
	if strings.Join(snap.Skills, "|") != strings.Join(wantSkills, "|") {
		t.Errorf("Skills = %q", snap.Skills)
	}

	if len(snap.Projects) != 3 {
		t.Fatalf("got %d projects, want 3", len(snap.Projects))
	}
	wantProjects := []domain.Project{
		{Key: "rain-engine", Name: "Rain Engine", Desc: "Canvas rain that reacts to the cursor.", URL: "https://github.com/infodaemon/rain"},
		{Key: "night-market", Name: "Night Market", Desc: "A tiny game about haggling with robots.", URL: "https://infodaemon.itch.io/night-market"},
		{Key: "signal-notes", Name: "Signal Notes", Desc: "Talks and write-ups.", URL: "#"},
	}
	for i, want := range wantProjects {
		if snap.Projects[i] != want {
			t.Errorf("project[%d] = %+v, want %+v", i, snap.Projects[i], want)
		}
	}

	if snap.Contact.Email != "hello@infodaemon.dev" || snap.Contact.Location != "Cyberspace" {
		t.Errorf("Contact = %+v", snap.Contact)
	}

	var keys []string
	for _, l := range snap.Links {
		keys = append(keys, l.Key)
	}
	if strings.Join(keys, ",") != "site,resume,gh,itch" {
		t.Errorf("link keys = %v", keys)
	}
	if l, _ := snap.FindLink("resume"); l.URL != "https://infodaemon.dev/resume.pdf" {
		t.Errorf("resume url = %q", l.URL)
	}
	if l, _ := snap.FindLink("gh"); l.Label != "GH" {
		t.Errorf("gh label = %q", l.Label)
	}
}

func TestScrape_Sparse(t *testing.T) {
	snap := scrapeFile(t, "sparse.html")
	if snap.About != "Just the about section." {
		t.Errorf("About = %q", snap.About)
	}
	if len(snap.Skills) != 0 {
		t.Errorf("Skills = %v, want none", snap.Skills)
	}
	if len(snap.Projects) != 1 || snap.Projects[0].Name != "Untitled" || snap.Projects[0].Key != "untitled" || snap.Projects[0].URL != "#" {
		t.Errorf("Projects = %+v", snap.Projects)
	}
	if snap.Contact.Email != "" {
		t.Errorf("Email = %q, want empty", snap.Contact.Email)
	}
	if len(snap.Links) != 1 || snap.Links[0].Key != "site" {
		t.Errorf("Links = %+v", snap.Links)
	}
}

func TestScrape_NoAbout(t *testing.T) {
	snap, err := Scrape(strings.NewReader("<p>nothing</p>"), "http://localhost")
	if err != nil {
		t.Fatal(err)
	}
	if snap.About != noAboutText {
		t.Errorf("About = %q", snap.About)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Rain Engine", "rain-engine"},
		{"  --Hello,  World!--", "hello-world"},
		{"already-slug", "already-slug"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeyFromHost(t *testing.T) {
	tests := []struct{ url, want string }{
		{"https://github.com/x/y", "gh"},
		{"https://www.twitter.com/x", "tw"},
		{"https://x.com/x", "tw"},
		{"https://linkedin.com/in/x", "in"},
		{"https://someone.itch.io/game", "itch"},
		{"https://youtu.be/abc", "yt"},
		{"https://blog.example.org/post", "blog.example"},
		{"/relative/path", "site"},
		{"http://[::1", "link"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := KeyFromHost(tt.url, "http://localhost"); got != tt.want {
				t.Errorf("KeyFromHost(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestPage_Snapshot(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		snap := NewDefaultPage("https://infodaemon.dev", nil).Snapshot()
		if len(snap.Projects) != 3 {
			t.Errorf("got %d projects", len(snap.Projects))
		}
	})

	t.Run("re-reads file on every call", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.html")
		write := func(name string) {
			body := `<section id="projects"><div class="card"><h3>` + name + `</h3></div></section>`
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
		}
		p := NewFilePage(path, "http://localhost", nil)
		write("First")
		if got := p.Snapshot().Projects[0].Name; got != "First" {
			t.Errorf("first snapshot project = %q", got)
		}
		write("Second")
		if got := p.Snapshot().Projects[0].Name; got != "Second" {
			t.Errorf("second snapshot project = %q", got)
		}
	})

	t.Run("missing file keeps previous snapshot", func(t *testing.T) {
		log := &logSpy{}
		p := NewFilePage(filepath.Join(t.TempDir(), "missing.html"), "http://localhost", log)
		snap := p.Snapshot()
		if snap.About != domain.PlaceholderSnapshot().About {
			t.Errorf("About = %q, want placeholder", snap.About)
		}
		if len(log.lines) != 1 {
			t.Errorf("expected one logged failure, got %v", log.lines)
		}
	})
}

func TestStatic(t *testing.T) {
	want := domain.ContentSnapshot{About: "fixture"}
	if got := (Static{Content: want}).Snapshot(); got.About != "fixture" {
		t.Errorf("Snapshot().About = %q", got.About)
	}
}

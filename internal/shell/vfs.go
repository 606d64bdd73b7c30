package shell

import (
	"fmt"
	"strings"

	"github.com/infodaemon/infoterm/internal/domain"
)

const projectsDir = "projects"

const readmeText = `# Info•Daemon Terminal
Use 'help' to see commands.
Try: about, projects, contact`

// virtualFiles lists the root entries. Their contents resolve against the
// snapshot current at read time.
func (in *Interpreter) virtualFiles() []domain.VirtualFile {
	return []domain.VirtualFile{
		{Name: "README.md", Kind: domain.KindFile, Resolve: func() string { return readmeText }},
		{Name: "about.txt", Kind: domain.KindFile, Resolve: func() string { return in.snapshot.About }},
		{Name: "skills.txt", Kind: domain.KindFile, Resolve: in.skillsText},
		{Name: "contact.txt", Kind: domain.KindFile, Resolve: in.contactText},
		{Name: projectsDir, Kind: domain.KindDirectory},
		{Name: "links", Kind: domain.KindFile, Resolve: in.linksTable},
	}
}

func (in *Interpreter) lookupFile(name string) (domain.VirtualFile, bool) {
	name = strings.TrimSuffix(name, "/")
	for _, f := range in.files {
		if f.Name == name {
			return f, true
		}
	}
	return domain.VirtualFile{}, false
}

func (in *Interpreter) skillsText() string {
	lines := make([]string, len(in.snapshot.Skills))
	for i, s := range in.snapshot.Skills {
		lines[i] = " - " + s
	}
	return strings.Join(lines, "\n")
}

func (in *Interpreter) contactText() string {
	c := in.snapshot.Contact
	return fmt.Sprintf("Email: %s  Location: %s", c.Email, c.Location)
}

func (in *Interpreter) linksTable() string {
	lines := make([]string, len(in.snapshot.Links))
	for i, l := range in.snapshot.Links {
		lines[i] = fmt.Sprintf("%s  %s  %s", l.Key, l.Label, l.URL)
	}
	return strings.Join(lines, "\n")
}

func projectDetail(p domain.Project) string {
	url := "(no url)"
	if p.HasURL() {
		url = p.URL
	}
	return fmt.Sprintf("== %s ==\n%s\nURL: %s", p.Name, p.Desc, url)
}

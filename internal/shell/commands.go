package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/infodaemon/infoterm/internal/browser"
	"github.com/infodaemon/infoterm/internal/domain"
	"github.com/infodaemon/infoterm/internal/effects"
)

const dateLayout = "Mon Jan 02 2006 15:04:05 MST"

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

func (in *Interpreter) registerBuiltins() error {
	handlers := map[string]Handler{
		"help":     in.cmdHelp,
		"clear":    in.cmdClear,
		"history":  in.cmdHistory,
		"ls":       in.cmdLs,
		"cat":      in.cmdCat,
		"echo":     in.cmdEcho,
		"whoami":   in.cmdWhoami,
		"about":    in.cmdAbout,
		"skills":   in.cmdSkills,
		"projects": in.cmdProjects,
		"contact":  in.cmdContact,
		"links":    in.cmdLinks,
		"open":     in.cmdOpen,
		"date":     in.cmdDate,
		"pwd":      in.cmdPwd,
		"cd":       in.cmdCd,
		"flicker":  in.switchCommand(effects.Flicker),
		"warp":     in.switchCommand(effects.Warp),
		"rain":     in.switchCommand(effects.Rain),
		"pulse":    in.switchCommand(effects.Pulse),
	}
	for _, def := range domain.CommandDefs {
		h, ok := handlers[def.Name]
		if !ok {
			return fmt.Errorf("register %s: no handler", def.Name)
		}
		err := in.registry.Register(Command{
			Name:        def.Name,
			Usage:       def.Usage,
			Description: def.Description,
			Group:       def.Group,
			Handler:     h,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) cmdHelp([]string) error {
	cmds := in.registry.Commands()
	width := 0
	for _, c := range cmds {
		width = max(width, len(synopsis(c)))
	}

	lines := []string{"Available commands"}
	for _, g := range domain.CommandGroups {
		var group []string
		for _, c := range cmds {
			if c.Group == g.Key {
				group = append(group, fmt.Sprintf("    %-*s  %s", width, synopsis(c), c.Description))
			}
		}
		if len(group) == 0 {
			continue
		}
		lines = append(lines, "  "+g.Label)
		lines = append(lines, group...)
	}
	in.screen.Print(strings.Join(lines, "\n"))
	return nil
}

func synopsis(c Command) string {
	if c.Usage == "" {
		return c.Name
	}
	return c.Name + " " + c.Usage
}

func (in *Interpreter) cmdClear([]string) error {
	in.screen.Clear()
	return nil
}

func (in *Interpreter) cmdHistory([]string) error {
	entries := in.history.Entries()
	if len(entries) == 0 {
		in.screen.Print("(empty)")
		return nil
	}
	lines := make([]string, len(entries))
	for i, h := range entries {
		lines[i] = fmt.Sprintf("%3d  %s", i+1, h)
	}
	in.screen.Print(strings.Join(lines, "\n"))
	return nil
}

func (in *Interpreter) cmdLs(args []string) error {
	arg := firstArg(args)
	switch arg {
	case "", ".":
		names := make([]string, len(in.files))
		for i, f := range in.files {
			names[i] = f.Name
			if f.IsDir() {
				names[i] += "/"
			}
		}
		in.screen.Print(strings.Join(names, "  "))
		return nil
	case projectsDir, projectsDir + "/":
		names := make([]string, len(in.snapshot.Projects))
		for i, p := range in.snapshot.Projects {
			names[i] = p.Key + "/"
		}
		in.screen.Print(strings.Join(names, "  "))
		return nil
	}
	return notFound("ls", "cannot access '%s': No such file or directory", arg)
}

func (in *Interpreter) cmdCat(args []string) error {
	arg := firstArg(args)
	if arg == "" {
		return badArgument("cat", "missing file operand")
	}

	if strings.HasPrefix(arg, projectsDir+"/") && len(arg) > len(projectsDir)+1 {
		key := strings.Split(arg, "/")[1]
		p, ok := in.snapshot.FindProject(key)
		if !ok {
			return notFound("cat", "%s: No such file or directory", arg)
		}
		in.screen.Print(projectDetail(p))
		return nil
	}

	f, ok := in.lookupFile(arg)
	if !ok {
		return notFound("cat", "%s: No such file or directory", arg)
	}
	if f.IsDir() {
		return badArgument("cat", "%s: Is a directory", f.Name)
	}
	l := Line{Text: f.Resolve()}
	if strings.HasSuffix(f.Name, ".md") {
		l.Lang = "markdown"
	}
	in.screen.PrintLine(l)
	return nil
}

func (in *Interpreter) cmdEcho(args []string) error {
	in.screen.Print(strings.Join(args, " "))
	return nil
}

func (in *Interpreter) cmdWhoami([]string) error {
	in.screen.Print(in.session.User)
	return nil
}

func (in *Interpreter) cmdAbout([]string) error {
	in.screen.Print(in.snapshot.About)
	return nil
}

func (in *Interpreter) cmdSkills([]string) error {
	in.screen.Print(in.skillsText())
	return nil
}

func (in *Interpreter) cmdProjects([]string) error {
	lines := make([]string, len(in.snapshot.Projects))
	for i, p := range in.snapshot.Projects {
		lines[i] = fmt.Sprintf("* %s — %s", p.Name, p.Desc)
		if p.HasURL() {
			lines[i] += " [" + p.URL + "]"
		}
	}
	in.screen.Print(strings.Join(lines, "\n"))
	return nil
}

func (in *Interpreter) cmdContact([]string) error {
	in.screen.Print(in.contactText())
	keys := make([]string, len(in.snapshot.Links))
	for i, l := range in.snapshot.Links {
		keys[i] = l.Key
	}
	if len(keys) > 0 {
		in.screen.Print("Tip: open " + strings.Join(keys, " | "))
	}
	return nil
}

func (in *Interpreter) cmdLinks([]string) error {
	if len(in.snapshot.Links) == 0 {
		in.screen.Print("(none)")
		return nil
	}
	w := 0
	for _, l := range in.snapshot.Links {
		w = max(w, len(l.Key))
	}
	lines := make([]string, len(in.snapshot.Links))
	for i, l := range in.snapshot.Links {
		lines[i] = fmt.Sprintf("%-*s -> %s", w, l.Key, l.URL)
	}
	in.screen.Print(strings.Join(lines, "\n"))
	return nil
}

func (in *Interpreter) cmdOpen(args []string) error {
	target := firstArg(args)
	if target == "" {
		return badArgument("open", "missing operand")
	}
	url := ensureURL(target)
	if l, ok := in.snapshot.FindLink(target); ok {
		url = l.URL
	}
	if url == "" || url == "#" {
		return notFound("open", "cannot open '%s'", target)
	}

	in.screen.Print("opening " + url + " …")
	if in.opener == nil {
		return nil
	}
	if err := in.opener.Open(url); err != nil {
		in.logf("shell: open %s: %v", url, err)
		if qr := browser.QRLines(url); len(qr) > 0 {
			in.screen.Print("no browser available; scan to open:\n" + strings.Join(qr, "\n"))
		}
	}
	return nil
}

// ensureURL prefixes bare hosts with https://.
func ensureURL(u string) string {
	if schemeRe.MatchString(u) {
		return u
	}
	return "https://" + u
}

func (in *Interpreter) cmdDate([]string) error {
	in.screen.Print(in.clock().Format(dateLayout))
	return nil
}

func (in *Interpreter) cmdPwd([]string) error {
	path := "/home/" + in.session.User
	if in.session.Cwd != "~" && in.session.Cwd != "" {
		path += "/" + in.session.Cwd
	}
	in.screen.Print(path)
	return nil
}

// cmdCd only changes the prompt; file resolution never depends on cwd.
func (in *Interpreter) cmdCd(args []string) error {
	switch arg := firstArg(args); arg {
	case "", "~", "/", "..":
		in.session.Cwd = "~"
	default:
		in.session.Cwd = strings.ReplaceAll(arg, "/", "")
	}
	return nil
}

// switchCommand builds the on/off handler for one effect toggle.
func (in *Interpreter) switchCommand(name string) Handler {
	return func(args []string) error {
		if in.bridge == nil {
			return notFound(name, "toggle not found")
		}
		cur, err := in.bridge.Read(name)
		if errors.Is(err, effects.ErrToggleNotFound) {
			return notFound(name, "toggle not found")
		}
		if err != nil {
			return err
		}
		if len(args) == 0 {
			in.screen.Print(fmt.Sprintf(`%s is %s (try "%s on" or "%s off")`, name, effects.FormatSwitch(cur), name, name))
			return nil
		}
		on, err := effects.ParseSwitch(args[0])
		if err != nil {
			return badArgument(name, "%v", err)
		}
		if err := in.bridge.Write(name, on); err != nil {
			return err
		}
		in.screen.Print(name + " " + effects.FormatSwitch(on))
		return nil
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

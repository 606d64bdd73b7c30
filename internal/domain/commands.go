package domain

// CommandDef describes a terminal command for help output.
type CommandDef struct {
	Name        string
	Usage       string // argument synopsis, empty when the command takes none
	Description string
	Group       string // display group for help
}

// CommandDefs is the single source of truth for the command vocabulary, in
// registration order.
var CommandDefs = []CommandDef{
	// General
	{Name: "help", Description: "show this help", Group: "general"},
	{Name: "clear", Description: "clear the screen", Group: "general"},
	{Name: "history", Description: "list previous commands", Group: "general"},
	// Files
	{Name: "ls", Usage: "[dir]", Description: "list files", Group: "files"},
	{Name: "cat", Usage: "<file|projects/key>", Description: "print a file or project", Group: "files"},
	{Name: "echo", Usage: "<text>", Description: "print text", Group: "files"},
	// Info
	{Name: "whoami", Description: "print the user name", Group: "info"},
	{Name: "about", Description: "about this site", Group: "info"},
	{Name: "skills", Description: "list skills", Group: "info"},
	{Name: "projects", Description: "list projects", Group: "info"},
	{Name: "contact", Description: "contact details", Group: "info"},
	{Name: "links", Description: "list links", Group: "info"},
	{Name: "open", Usage: "<key|url>", Description: "open a link in the browser", Group: "info"},
	// System
	{Name: "date", Description: "print the current date", Group: "system"},
	{Name: "pwd", Description: "print working directory", Group: "system"},
	{Name: "cd", Usage: "[path]", Description: "change directory (cosmetic)", Group: "system"},
	// Effects
	{Name: "flicker", Usage: "<on|off>", Description: "toggle text flicker", Group: "effects"},
	{Name: "warp", Usage: "<on|off>", Description: "toggle CRT fisheye", Group: "effects"},
	{Name: "rain", Usage: "<on|off>", Description: "toggle site wide rain", Group: "effects"},
	{Name: "pulse", Usage: "<on|off>", Description: "toggle site wide pulse", Group: "effects"},
}

// LookupCommandDef returns the definition for name.
func LookupCommandDef(name string) (CommandDef, bool) {
	for _, c := range CommandDefs {
		if c.Name == name {
			return c, true
		}
	}
	return CommandDef{}, false
}

// CommandGroups defines the display order and labels for help groups.
var CommandGroups = []struct {
	Key   string
	Label string
}{
	{"general", "General"},
	{"files", "Files"},
	{"info", "Info"},
	{"system", "System"},
	{"effects", "Effects"},
}

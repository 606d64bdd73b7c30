package shell

import (
	"strings"
)

// Completion is the outcome of one completion request.
type Completion struct {
	// Input is the rewritten input; equal to the original unless there was
	// exactly one match.
	Input string
	// Matches lists every candidate that matched.
	Matches []string
}

// Complete prefix-completes input. A lone token completes against
// commands; otherwise the last token completes against args. A unique
// match rewrites the input, anything else leaves it alone.
func Complete(input string, commands, args []string) Completion {
	res := Completion{Input: input}
	parts := Tokenize(input)
	if len(parts) == 0 {
		return res
	}

	if len(parts) == 1 {
		res.Matches = FilterByPrefix(commands, parts[0])
		if len(res.Matches) == 1 {
			res.Input = res.Matches[0] + " "
		}
		return res
	}

	last := parts[len(parts)-1]
	res.Matches = FilterByPrefix(args, last)
	if len(res.Matches) == 1 {
		words := append(append([]string{}, parts[:len(parts)-1]...), res.Matches[0])
		res.Input = strings.Join(words, " ")
	}
	return res
}

// FilterByPrefix returns the candidates that start with partial, in order.
// Matching is case-sensitive.
func FilterByPrefix(candidates []string, partial string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			out = append(out, c)
		}
	}
	return out
}

// ArgumentCandidates is the pool for argument completion: file names, link
// keys, project paths and the switch words, without duplicates.
func (in *Interpreter) ArgumentCandidates() []string {
	var pool []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			pool = append(pool, s)
		}
	}
	for _, f := range in.files {
		add(f.Name)
	}
	for _, l := range in.snapshot.Links {
		add(l.Key)
	}
	for _, p := range in.snapshot.Projects {
		add(projectsDir + "/" + p.Key)
	}
	add("on")
	add("off")
	return pool
}

// Complete completes input against the registry and the current snapshot.
// Several matches are printed on the screen; the returned string is the new
// input.
func (in *Interpreter) Complete(input string) string {
	res := Complete(input, in.registry.Names(), in.ArgumentCandidates())
	if len(res.Matches) > 1 {
		in.screen.Print(strings.Join(res.Matches, "  "))
	}
	return res.Input
}

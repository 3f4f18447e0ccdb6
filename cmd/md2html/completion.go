package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob patterns
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long      string   // --output
	Short     string   // -o (empty if none)
	Type      flagType // completion type
	Desc      string   // help text
	Values    []string // for enum flags
	FileGlobs []string // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name string
	Desc string
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values    func() []string // enum values
	FileGlobs []string        // file glob patterns
	IsDir     bool            // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"engine":          {Values: md2html.Engines},
	"highlight-style": {Values: pipeline.HighlightStyles},
	"style":           {Values: assets.NewEmbeddedLoader().Names},

	// File flags with glob patterns
	"config": {FileGlobs: []string{"*.yaml", "*.yml"}},
	"css":    {FileGlobs: []string{"*.css"}},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// inputGlobs are the file patterns offered as convert input.
var inputGlobs = []string{"*.md", "*.markdown"}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case len(meta.FileGlobs) > 0:
				fd.Type = flagFile
				fd.FileGlobs = meta.FileGlobs
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// convertFlagDefs returns the completion definitions of the convert flags.
// They are extracted from the actual FlagSet, the single source of truth.
func convertFlagDefs() []flagDef {
	return extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}))
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "convert", Desc: "Convert markdown to HTML"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash()
	case ShellZsh:
		script = generateZsh()
	case ShellFish:
		script = generateFish()
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2html completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    md2html completion zsh > \"${fpath[1]}/_md2html\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2html completion fish > ~/.config/fish/completions/md2html.fish")
}

// generateBash returns the bash completion script.
func generateBash() string {
	flags := convertFlagDefs()

	var b strings.Builder
	b.WriteString("# bash completion for md2html\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range flags {
		var reply string
		switch f.Type {
		case flagEnum:
			reply = fmt.Sprintf("$(compgen -W %q -- \"$cur\")", strings.Join(f.Values, " "))
		case flagFile:
			reply = bashFileGlobs(f.FileGlobs)
		case flagDir:
			reply = "$(compgen -d -- \"$cur\")"
		default:
			continue
		}
		b.WriteString("        " + bashFlagPattern(f) + ")\n")
		b.WriteString("            COMPREPLY=(" + reply + ")\n")
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n\n")

	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, "--"+f.Long)
	}
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	commands := make([]string, 0, 4)
	for _, c := range getCommands() {
		commands = append(commands, c.Name)
	}
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commands, " "))
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY+=(" + bashFileGlobs(inputGlobs) + " $(compgen -d -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _md2html md2html\n")
	return b.String()
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func bashFileGlobs(globs []string) string {
	parts := make([]string, len(globs))
	for i, g := range globs {
		parts[i] = fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g)
	}
	return strings.Join(parts, " ")
}

// generateZsh returns the zsh completion script.
func generateZsh() string {
	var b strings.Builder
	b.WriteString("#compdef md2html\n\n")

	b.WriteString("_md2html_first() {\n")
	b.WriteString("    _alternative \\\n")
	commands := make([]string, 0, 4)
	for _, c := range getCommands() {
		commands = append(commands, c.Name+"\\:"+strings.ReplaceAll(zshEscape(c.Desc), " ", `\ `))
	}
	fmt.Fprintf(&b, "        'commands:command:((%s))' \\\n", strings.Join(commands, " "))
	fmt.Fprintf(&b, "        'files:markdown file:_files -g \"%s\"'\n", zshGlob(inputGlobs))
	b.WriteString("}\n\n")

	b.WriteString("_md2html() {\n")
	b.WriteString("    _arguments -s \\\n")
	for _, f := range convertFlagDefs() {
		spec := "--" + f.Long
		if f.Short != "" {
			spec = fmt.Sprintf("(-%s --%s)'{-%s,--%s}'", f.Short, f.Long, f.Short, f.Long)
		}
		desc := "[" + zshEscape(f.Desc) + "]"

		var action string
		switch f.Type {
		case flagBool:
		case flagEnum:
			action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
		case flagFile:
			action = ":" + f.Long + ":_files -g \"" + zshGlob(f.FileGlobs) + "\""
		case flagDir:
			action = ":" + f.Long + ":_files -/"
		default:
			action = ":" + f.Long + ": "
		}
		fmt.Fprintf(&b, "        '%s%s%s' \\\n", spec, desc, action)
	}
	b.WriteString("        '1: :_md2html_first' \\\n")
	fmt.Fprintf(&b, "        '*:markdown file:_files -g \"%s\"'\n", zshGlob(inputGlobs))
	b.WriteString("}\n\n")
	b.WriteString("_md2html \"$@\"\n")
	return b.String()
}

// zshEscape escapes text for a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

// zshGlob joins globs into one zsh alternation pattern.
func zshGlob(globs []string) string {
	if len(globs) == 1 {
		return globs[0]
	}
	exts := make([]string, len(globs))
	for i, g := range globs {
		exts[i] = strings.TrimPrefix(g, "*.")
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// generateFish returns the fish completion script.
func generateFish() string {
	var b strings.Builder
	b.WriteString("# fish completion for md2html\n")
	b.WriteString("complete -c md2html -f\n")

	for _, c := range getCommands() {
		fmt.Fprintf(&b, "complete -c md2html -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, f := range convertFlagDefs() {
		line := "complete -c md2html"
		if f.Short != "" {
			line += " -s " + f.Short
		}
		line += " -l " + f.Long + " -d '" + fishEscape(f.Desc) + "'"

		switch f.Type {
		case flagBool:
		case flagEnum:
			line += " -x -a '" + strings.Join(f.Values, " ") + "'"
		case flagFile:
			exts := make([]string, len(f.FileGlobs))
			for i, g := range f.FileGlobs {
				exts[i] = strings.TrimPrefix(g, "*")
			}
			line += " -r -a '(__fish_complete_suffix " + strings.Join(exts, " ") + ")'"
		case flagDir:
			line += " -r -a '(__fish_complete_directories)'"
		default:
			line += " -x"
		}
		b.WriteString(line + "\n")
	}

	exts := make([]string, len(inputGlobs))
	for i, g := range inputGlobs {
		exts[i] = strings.TrimPrefix(g, "*")
	}
	fmt.Fprintf(&b, "complete -c md2html -a '(__fish_complete_suffix %s)'\n", strings.Join(exts, " "))
	return b.String()
}

// fishEscape escapes text for a single-quoted fish string.
func fishEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return r.Replace(s)
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [command] [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown to HTML (default)")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, arguments are passed to convert.")
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (default: config input.defaultDir, else stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "  -e, --engine <s>          Dialect: classic, commonmark")
	fmt.Fprintln(w, "      --tab-width <n>       Spaces per indentation level (1-16)")
	fmt.Fprintln(w, "      --html4               Write <br> instead of <br />")
	fmt.Fprintln(w, "      --no-markup           Escape raw HTML")
	fmt.Fprintln(w, "      --no-entities         Encode every &")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -s, --standalone          Write a complete HTML document")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first header)")
	fmt.Fprintln(w, "      --css <path>          Stylesheet embedded in <head>")
	fmt.Fprintln(w, "      --style <name>        Named stylesheet, unless --css is set")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory of {name}.css stylesheets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight           Highlight code blocks")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style name (implies --highlight)")
	fmt.Fprintln(w, "      --no-highlight        Disable highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2HTML_CONFIG, MD2HTML_ENGINE, MD2HTML_TAB_WIDTH, MD2HTML_HIGHLIGHT_STYLE,")
	fmt.Fprintln(w, "  MD2HTML_STYLE, MD2HTML_ASSET_PATH, MD2HTML_TIMEOUT, MD2HTML_INPUT_DIR,")
	fmt.Fprintln(w, "  MD2HTML_OUTPUT_DIR, MD2HTML_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

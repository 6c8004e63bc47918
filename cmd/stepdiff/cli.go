package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/h0rv/stepdiff/internal/theme"
)

// version is the release version printed by -v/--version.
const version = "0.1.0"

// cliOpts is the parsed command line: a hand-rolled flag loop (no
// flag-parsing library) covering view options plus animation, blame, and
// debug-log controls.
type cliOpts struct {
	refs          []string
	staged        bool
	sideBySide    bool
	noLineNumbers bool
	contextLines  int
	explorer      bool
	noWrap        bool
	noDiffBg      bool
	noSyntax      bool
	theme         string

	noAnim   bool
	speedMS  int
	blame    bool
	debugLog string
}

func parseArgs() cliOpts {
	opts := cliOpts{contextLines: 3, speedMS: 150}
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printUsage()
			os.Exit(0)
		case arg == "-v" || arg == "--version":
			fmt.Println("stepdiff " + version)
			os.Exit(0)
		case arg == "--themes":
			theme.ListThemes()
		case arg == "--staged" || arg == "--cached":
			opts.staged = true
		case arg == "-t":
			if i+1 < len(args) {
				i++
				opts.theme = args[i]
			}
		case arg == "-s":
			opts.sideBySide = true
		case arg == "-e":
			opts.explorer = true
		case arg == "-W":
			opts.noWrap = true
		case arg == "-B":
			opts.noDiffBg = true
		case arg == "-S":
			opts.noSyntax = true
		case arg == "-N":
			opts.noLineNumbers = true
		case arg == "-anim":
			opts.noAnim = false
		case arg == "-noanim":
			opts.noAnim = true
		case arg == "-speed":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil && n > 0 {
					opts.speedMS = n
				}
			}
		case arg == "-blame":
			opts.blame = true
		case arg == "-debuglog":
			if i+1 < len(args) {
				i++
				opts.debugLog = args[i]
			}
		case strings.HasPrefix(arg, "-U"):
			if n, err := strconv.Atoi(arg[2:]); err == nil && n >= 0 {
				opts.contextLines = n
			}
		default:
			opts.refs = append(opts.refs, arg)
		}
	}
	if opts.theme == "" {
		if env := os.Getenv("STEPDIFF_THEME"); env != "" {
			opts.theme = env
		}
	}
	if opts.theme == "" {
		opts.theme = "monokai"
	}
	return opts
}

func printUsage() {
	fmt.Print(`stepdiff - an animated, step-through terminal diff viewer

Usage: stepdiff [flags] [ref] [ref2]

Flags:
  -s            Split (side-by-side) view
  -e            Open file explorer
  -N            Disable line numbers (on by default)
  -W            Turn the wrap setting off (long lines are clipped either way)
  -B            Disable diff background tints (on by default)
  -S            Disable syntax highlighting (on by default)
  -U<n>         Fold runs of 2n or more unchanged lines (default 3; 0 = no folding)
  -t <name>     Color theme (default: monokai, env: STEPDIFF_THEME)
  --staged      Show staged changes (same as --cached)
  --cached      Show staged changes (same as --staged)
  --themes      List available themes
  -anim         Enable step animation (default)
  -noanim       Disable step animation (snap instantly)
  -speed <ms>   Step animation duration in ms (default 150)
  -blame        Start in blame view
  -debuglog <path>  Write debug log to path
  -v, --version Show version
  -h, --help    Show this help

Arguments:
  ref           Git ref to diff index against (default: uncommitted changes)
  ref1 ref2     Diff between two refs
  old new       Two file paths, diffed directly without git

Keyboard Shortcuts:
  l/h           Step forward/backward   s   Split view
  ]/[           Next/prev hunk          v   Evolution view
  g/G           Go to start/end         b   Blame overlay
  j/k           Scroll down/up          w   Toggle wrap setting (no effect on drawing)
  d/u           Half page down/up       e   File explorer
  y/Y/c         Yank added/patch/line   A   Stage hunk
  r/R           Yank removed/result     f   Toggle full file view
  /             Search                  n/N Next/prev match
  )/(           Next/prev file          F   Follow mode
  o             Open in $EDITOR         W   Toggle watch mode
  +/-           More/less context       ?   Help overlay
  q             Quit
`)
}

func isPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/alphastock/internal/buildinfo"
	"github.com/spf13/cobra"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errUnterminatedQuote = errors.New("unterminated quote")

// lineFunc runs one parsed shell line.
type lineFunc func(ctx context.Context, args []string) error

func newShellCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long:  "Start an interactive session. Every command of the CLI can be typed without the program name; the session is kept between lines.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.shared {
				return errors.New("already in a shell")
			}
			a := st.app
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			buildinfo.PrintBuildData(a.out)
			fmt.Fprintln(a.out, "Alpha CLI (type 'help' for commands)")

			a.checkOnline(ctx)
			a.refreshUserName(ctx)
			go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

			runREPL(ctx, a.execLine, a.getStatus, a.reader)
			return nil
		},
	}
}

// execLine runs args through a fresh command tree bound to this App.
func (a *App) execLine(ctx context.Context, args []string) error {
	root := newRootCommand(&state{app: a, shared: true})
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.SetIn(a.reader)

	err := root.ExecuteContext(ctx)
	a.refreshUserName(ctx)
	return err
}

// runREPL reads lines from reader until EOF, "exit" or "quit", or until ctx
// is done. Each line is split with splitArgs and passed to run; errors are
// printed and the loop goes on.
func runREPL(ctx context.Context, run lineFunc, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("alpha %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		eof := err != nil

		args, perr := splitArgs(strings.TrimRight(line, "\r\n"))
		switch {
		case perr != nil:
			printlnFn("Error:", perr)
		case len(args) == 0:
		case args[0] == "exit" || args[0] == "quit":
			printlnFn("Bye!")
			return
		default:
			if err := run(ctx, args); err != nil {
				printlnFn("Error:", err)
			}
		}

		if eof {
			return
		}
	}
}

// splitArgs splits a line into words. Single and double quotes group words;
// a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xyz-asif/trackback/internal/models"
)

// execIface is the command surface the shell drives. *App implements it.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Report(ctx context.Context, kind models.Kind) error
	Search(query, location string) error
	History(username string, limit int) error
	Feed(limit int) error
	Sync(ctx context.Context) error
}

// runREPL reads one command per line until EOF, "exit" or "quit".
//
//	signup | login | logout
//	lost | found                 report an item (prompts for fields)
//	search [query] [@location]   e.g. "search wallet @library"
//	history [username] [limit]
//	feed [limit]
//	sync
//
// Handlers print their own errors; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "tb %s > ", statusFn())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: lost, found, search, history, feed, sync, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: signup, login, search, history, feed, sync, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "lost":
			_ = a.Report(ctx, models.KindLost)

		case "found":
			_ = a.Report(ctx, models.KindFound)

		case "search", "s":
			query, location := parseSearch(args)
			_ = a.Search(query, location)

		case "history", "h":
			username, limit := "", 0
			for _, arg := range args {
				if n, err := strconv.Atoi(arg); err == nil {
					limit = n
				} else {
					username = arg
				}
			}
			_ = a.History(username, limit)

		case "feed", "f":
			limit := 0
			if len(args) > 0 {
				limit, _ = strconv.Atoi(args[0])
			}
			_ = a.Feed(limit)

		case "sync":
			_ = a.Sync(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

// parseSearch splits shell arguments into a name query and a location
// filter. Words starting with @ belong to the location.
func parseSearch(args []string) (query, location string) {
	var q, loc []string
	inLocation := false
	for _, arg := range args {
		if rest, ok := strings.CutPrefix(arg, "@"); ok {
			inLocation = true
			arg = rest
		}
		if arg == "" {
			continue
		}
		if inLocation {
			loc = append(loc, arg)
		} else {
			q = append(q, arg)
		}
	}
	return strings.Join(q, " "), strings.Join(loc, " ")
}

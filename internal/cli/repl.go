package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL dispatches to. The real
// App type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Withdraw(ctx context.Context) error
	Posts(ctx context.Context) error
	WritePost(ctx context.Context) error
	Comments(ctx context.Context) error
	WriteComment(ctx context.Context) error
	Notices(ctx context.Context) error
	Hospitals(ctx context.Context) error
	Reserve(ctx context.Context) error
	Reservations(ctx context.Context) error
	Ask(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command and
// dispatches to a. Handler errors are not surfaced here; handlers report
// their own failures. The loop exits on scanner EOF or on exit/quit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hospital %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, update, passwd, withdraw, posts, write, comments, comment, notices, hospitals, reserve, reservations, ask, logout, exit")
			} else {
				printlnFn("Available commands: register, login, posts, notices, hospitals, ask, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "withdraw":
			_ = a.Withdraw(ctx)

		case "posts":
			_ = a.Posts(ctx)

		case "write":
			_ = a.WritePost(ctx)

		case "comments":
			_ = a.Comments(ctx)

		case "comment":
			_ = a.WriteComment(ctx)

		case "notices":
			_ = a.Notices(ctx)

		case "hospitals":
			_ = a.Hospitals(ctx)

		case "reserve":
			_ = a.Reserve(ctx)

		case "reservations":
			_ = a.Reservations(ctx)

		case "ask":
			_ = a.Ask(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

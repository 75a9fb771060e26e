package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context)
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Browse(ctx context.Context, args []string)
	Search(ctx context.Context, args []string)
	Show(ctx context.Context, args []string)
	Seller(ctx context.Context, args []string)
	Post(ctx context.Context)
	Edit(ctx context.Context, args []string)
	Delete(ctx context.Context, args []string)
	Sold(ctx context.Context, args []string)
	Mine(ctx context.Context)
	Profile(ctx context.Context)
	EditProfile(ctx context.Context)
	ChangePassword(ctx context.Context)
}

// authOnly lists the commands that require an authenticated session.
var authOnly = map[string]bool{
	"post":        true,
	"edit":        true,
	"delete":      true,
	"sold":        true,
	"mine":        true,
	"profile":     true,
	"editprofile": true,
	"passwd":      true,
	"logout":      true,
}

// runREPL starts a read–eval–print loop for the marketplace CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Anonymous commands: help, browse, search, show, seller, register, login,
// exit. Logged in, additionally: post, edit, delete, sold, mine, profile,
// editprofile, passwd, logout. Authenticated-only commands entered while
// anonymous are refused with a login hint instead of being dispatched.
//
// Command handlers report their own errors; the loop itself stays focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if authOnly[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: browse, search, show, seller, post, edit, delete, sold, mine, profile, editprofile, passwd, logout, exit")
			} else {
				printlnFn("Available commands: browse, search, show, seller, register, login, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "b", "browse":
			a.Browse(ctx, args)

		case "search":
			a.Search(ctx, args)

		case "show":
			a.Show(ctx, args)

		case "seller":
			a.Seller(ctx, args)

		case "post":
			a.Post(ctx)

		case "edit":
			a.Edit(ctx, args)

		case "delete":
			a.Delete(ctx, args)

		case "sold":
			a.Sold(ctx, args)

		case "mine":
			a.Mine(ctx)

		case "profile":
			a.Profile(ctx)

		case "editprofile":
			a.EditProfile(ctx)

		case "passwd":
			a.ChangePassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

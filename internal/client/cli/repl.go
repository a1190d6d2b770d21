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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Browse(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error
	Purchases(ctx context.Context) error
	Receipt(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, login, browse [free|premium|min=N|max=N|cat=slug], search <term>, show <id>, exit"
	helpMember = "Available commands: browse [free|premium|min=N|max=N|cat=slug], search <term>, show <id>, buy <id>..., purchases, receipt [txn] [pdf], download <txn>, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the CrickShots CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and passes the rest as arguments. Commands that need an account
// are rejected with a hint while logged out. The loop exits on scanner EOF
// or when the user types "exit" or "quit". Command prompts read from the
// same reader, so piped input stays in order.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "browse", "b":
			err = a.Browse(ctx, args)

		case "search":
			err = a.Search(ctx, args)

		case "show":
			err = a.Show(ctx, args)

		case "buy", "purchases", "receipt", "download", "whoami", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			switch cmd {
			case "buy":
				err = a.Buy(ctx, args)
			case "purchases":
				err = a.Purchases(ctx)
			case "receipt":
				err = a.Receipt(ctx, args)
			case "download":
				err = a.Download(ctx, args)
			case "whoami":
				err = a.WhoAmI(ctx)
			case "logout":
				err = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

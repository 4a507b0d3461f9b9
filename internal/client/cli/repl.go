package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/legacyvault/internal/client/bootstrap"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) (int, error) {
	return fmt.Fprintln(stdout, a...)
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentRoute() bootstrap.Route
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Vault(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Categories(ctx context.Context) error
	Toggle(ctx context.Context, args []string) error
	SaveCategories(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

func helpText(r bootstrap.Route) string {
	switch r.Name {
	case bootstrap.Main:
		return "Available commands: vault (v), show <n>, categories, toggle <n|id>..., save, whoami, logout, exit"
	case bootstrap.Onboarding:
		return "Available commands: categories, toggle <n|id>..., save, whoami, logout, exit"
	default:
		return "Available commands: register, login, forgot, exit"
	}
}

// runREPL starts a simple read–eval–print loop for the legacyvault CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Handler errors are ignored here; handlers report their own failures so
// the loop stays focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lv %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.currentRoute()))

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ResetPassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "v", "vault":
			_ = a.Vault(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <n>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "categories":
			_ = a.Categories(ctx)

		case "toggle":
			if len(args) == 0 {
				printlnFn("Usage: toggle <n|id>...")
				continue
			}
			_ = a.Toggle(ctx, args)

		case "save":
			_ = a.SaveCategories(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/legacyvault/internal/client/bootstrap"
)

type fakeExec struct {
	route bootstrap.Route

	calls []string
}

func (f *fakeExec) currentRoute() bootstrap.Route { return f.route }

func (f *fakeExec) record(c string) error {
	f.calls = append(f.calls, c)
	return nil
}

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.route = bootstrap.MainRoute("Ann")
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.route = bootstrap.Route{Name: bootstrap.Landing}
	return f.record("logout")
}
func (f *fakeExec) ResetPassword(context.Context) error      { return f.record("forgot") }
func (f *fakeExec) Vault(context.Context) error              { return f.record("vault") }
func (f *fakeExec) Show(_ context.Context, arg string) error { return f.record("show " + arg) }
func (f *fakeExec) Categories(context.Context) error         { return f.record("categories") }
func (f *fakeExec) Toggle(_ context.Context, args []string) error {
	return f.record("toggle " + strings.Join(args, ","))
}
func (f *fakeExec) SaveCategories(context.Context) error { return f.record("save") }
func (f *fakeExec) WhoAmI(context.Context) error         { return f.record("whoami") }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	lines := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"v",
		"show 2",
		"categories",
		"toggle 1 c2",
		"save",
		"whoami",
		"",
		"foobar",
		"logout",
		"forgot",
		"register",
		"exit",
		"vault",
	}, "\n")

	exec := &fakeExec{route: bootstrap.Route{Name: bootstrap.Landing}}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	require.Equal(t, []string{
		"login", "vault", "show 2", "categories", "toggle 1,c2", "save", "whoami", "logout", "forgot", "register",
	}, exec.calls)

	require.Contains(t, *lines, helpText(bootstrap.Route{Name: bootstrap.Landing}))
	require.Contains(t, *lines, helpText(bootstrap.MainRoute("Ann")))
	require.Contains(t, *lines, "Unknown command: foobar")
	require.Contains(t, *lines, "Bye!")
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{route: bootstrap.MainRoute("Ann")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("show\ntoggle\nwhoami")))

	require.Equal(t, []string{"whoami"}, exec.calls)
	require.Contains(t, *lines, "Usage: show <n>")
	require.Contains(t, *lines, "Usage: toggle <n|id>...")
}

func TestHelpText(t *testing.T) {
	require.Contains(t, helpText(bootstrap.Route{}), "login")
	require.Contains(t, helpText(bootstrap.Route{Name: bootstrap.Onboarding}), "categories")
	require.NotContains(t, helpText(bootstrap.Route{Name: bootstrap.Onboarding}), "vault")
	require.Contains(t, helpText(bootstrap.MainRoute("")), "vault")
}

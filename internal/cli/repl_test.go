package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls      []string
	activities int
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }
func (f *fakeExec) onActivity()      { f.activities++ }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Stay(ctx context.Context) error         { return f.record("stay") }
func (f *fakeExec) Profile(ctx context.Context) error      { return f.record("profile") }
func (f *fakeExec) Items(ctx context.Context) error        { return f.record("items") }
func (f *fakeExec) Claim(ctx context.Context) error        { return f.record("claim") }
func (f *fakeExec) Retry(ctx context.Context) error        { return f.record("retry") }
func (f *fakeExec) MyClaims(ctx context.Context) error     { return f.record("myclaims") }
func (f *fakeExec) EditClaim(ctx context.Context) error    { return f.record("editclaim") }
func (f *fakeExec) Unclaim(ctx context.Context) error      { return f.record("unclaim") }
func (f *fakeExec) RSVP(ctx context.Context) error         { return f.record("rsvp") }
func (f *fakeExec) AddGuest(ctx context.Context) error     { return f.record("addguest") }
func (f *fakeExec) DeleteGuest(ctx context.Context) error  { return f.record("delguest") }
func (f *fakeExec) Event(ctx context.Context) error        { return f.record("event") }
func (f *fakeExec) Bank(ctx context.Context) error         { return f.record("bank") }
func (f *fakeExec) AddItem(ctx context.Context) error      { return f.record("additem") }
func (f *fakeExec) DeleteItem(ctx context.Context) error   { return f.record("delitem") }
func (f *fakeExec) Seed(ctx context.Context) error         { return f.record("seed") }
func (f *fakeExec) ExportClaims(ctx context.Context) error { return f.record("exportclaims") }

func silenceOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func runScript(t *testing.T, f *fakeExec, lines ...string) {
	t.Helper()
	silenceOutput(t)
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), f, func() string { return "" }, reader)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f,
		"login",
		"items",
		"claim",
		"myclaims",
		"rsvp",
		"logout",
		"exit",
	)
	require.Equal(t, []string{"login", "items", "claim", "myclaims", "rsvp", "logout"}, f.calls)
}

func TestRunREPL_EveryCommandIsActivity(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f,
		"login",
		"",
		"items",
		"stay",
		"nonsense",
		"exit",
	)
	// Empty lines are not signals; unknown commands still are (the user
	// is clearly present).
	require.Equal(t, 5, f.activities)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "items") // no exit; EOF ends the loop
	require.Equal(t, []string{"items"}, f.calls)
}

func TestRunREPL_CaseInsensitiveAndAliases(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "LOGIN", "List", "quit")
	require.Equal(t, []string{"login", "items"}, f.calls)
}

// promptingExec reads a field from the shared reader inside a command,
// the way the real screens do.
type promptingExec struct {
	fakeExec
	reader *bufio.Reader
	got    []string
}

func (p *promptingExec) Claim(ctx context.Context) error {
	line, err := getText(p.reader, io.Discard, "Item")
	if err != nil {
		return err
	}
	p.got = append(p.got, line)
	return p.record("claim")
}

func TestRunREPL_PromptHelpersShareReader(t *testing.T) {
	silenceOutput(t)
	reader := bufio.NewReader(strings.NewReader("claim\ncrib set\nitems\nexit\n"))
	p := &promptingExec{reader: reader}

	runREPL(context.Background(), p, func() string { return "" }, reader)

	// The command loop must not buffer ahead of the in-command prompt.
	require.Equal(t, []string{"crib set"}, p.got)
	require.Equal(t, []string{"claim", "items"}, p.calls)
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) { s.calls = append(s.calls, name) }

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Register(context.Context)         { s.record("register") }
func (s *stubExec) Login(context.Context)            { s.record("login") }
func (s *stubExec) Logout(context.Context)           { s.record("logout") }
func (s *stubExec) Browse(context.Context, []string) { s.record("browse") }
func (s *stubExec) Search(context.Context, []string) { s.record("search") }
func (s *stubExec) Show(context.Context, []string)   { s.record("show") }
func (s *stubExec) Seller(context.Context, []string) { s.record("seller") }
func (s *stubExec) Post(context.Context)             { s.record("post") }
func (s *stubExec) Edit(context.Context, []string)   { s.record("edit") }
func (s *stubExec) Delete(context.Context, []string) { s.record("delete") }
func (s *stubExec) Sold(context.Context, []string)   { s.record("sold") }
func (s *stubExec) Mine(context.Context)             { s.record("mine") }
func (s *stubExec) Profile(context.Context)          { s.record("profile") }
func (s *stubExec) EditProfile(context.Context)      { s.record("editprofile") }
func (s *stubExec) ChangePassword(context.Context)   { s.record("passwd") }

var _ execIface = (*stubExec)(nil)

func runScript(t *testing.T, exec *stubExec, script string) []string {
	t.Helper()

	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
	return lines
}

func TestAnonymousCannotRunAuthCommands(t *testing.T) {
	exec := &stubExec{loggedIn: false}
	script := "post\nedit 1\ndelete 1\nsold 1\nmine\nprofile\neditprofile\npasswd\nlogout\nexit\n"

	lines := runScript(t, exec, script)

	assert.Empty(t, exec.calls)

	var refusals int
	for _, l := range lines {
		if strings.Contains(l, "Please login first.") {
			refusals++
		}
	}
	assert.Equal(t, 9, refusals)
}

func TestAnonymousCanBrowseAndLogin(t *testing.T) {
	exec := &stubExec{loggedIn: false}
	script := "browse\nsearch books\nshow 1\nseller 2\nregister\nlogin\nexit\n"

	runScript(t, exec, script)

	assert.Equal(t, []string{"browse", "search", "show", "seller", "register", "login"}, exec.calls)
}

func TestLoggedInDispatchesAuthCommands(t *testing.T) {
	exec := &stubExec{loggedIn: true}
	script := "post\nmine\nlogout\nexit\n"

	lines := runScript(t, exec, script)

	assert.Equal(t, []string{"post", "mine", "logout"}, exec.calls)
	for _, l := range lines {
		assert.NotContains(t, l, "Please login first.")
	}
}

func TestUnknownCommandReported(t *testing.T) {
	exec := &stubExec{loggedIn: false}

	lines := runScript(t, exec, "frobnicate\nexit\n")

	assert.Empty(t, exec.calls)
	var found bool
	for _, l := range lines {
		if strings.Contains(l, "Unknown command") {
			found = true
		}
	}
	assert.True(t, found)
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xyz-asif/trackback/internal/models"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Report(_ context.Context, kind models.Kind) error {
	f.calls = append(f.calls, "report:"+string(kind))
	return nil
}
func (f *fakeExec) Search(query, location string) error {
	f.calls = append(f.calls, "search:"+query+"|"+location)
	return nil
}
func (f *fakeExec) History(username string, limit int) error {
	f.calls = append(f.calls, "history:"+username+"|"+strconv.Itoa(limit))
	return nil
}
func (f *fakeExec) Feed(limit int) error {
	f.calls = append(f.calls, "feed:"+strconv.Itoa(limit))
	return nil
}
func (f *fakeExec) Sync(context.Context) error { f.calls = append(f.calls, "sync"); return nil }

func TestRunREPL_Dispatch(t *testing.T) {
	input := strings.Join([]string{
		"",
		"help",
		"signup",
		"login",
		"lost",
		"FOUND",
		"search red wallet @library cafe",
		"history alice 5",
		"feed 3",
		"sync",
		"bogus",
		"logout",
		"exit",
		"login",
	}, "\n")

	f := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), f, func() string { return "guest@local" }, bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{
		"signup",
		"login",
		"report:lost",
		"report:found",
		"search:red wallet|library cafe",
		"history:alice|5",
		"feed:3",
		"sync",
		"logout",
	}, f.calls)
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "Bye!")
	assert.Contains(t, out.String(), "tb guest@local > ")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	f := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("sync")), &out)
	assert.Equal(t, []string{"sync"}, f.calls)
}

func TestParseSearch(t *testing.T) {
	cases := []struct {
		in       []string
		query    string
		location string
	}{
		{nil, "", ""},
		{[]string{"wallet"}, "wallet", ""},
		{[]string{"@library"}, "", "library"},
		{[]string{"blue", "backpack", "@", "main", "hall"}, "blue backpack", "main hall"},
	}
	for _, tc := range cases {
		q, loc := parseSearch(tc.in)
		assert.Equal(t, tc.query, q)
		assert.Equal(t, tc.location, loc)
	}
}

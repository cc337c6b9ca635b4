// Package test holds end-to-end scenarios run against a live server by
// cmd/testrunner.
package test

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/testclient"
)

// uniqueCounter provides unique player ids within a single run
var uniqueCounter uint64

func uniqueUser(base string) string {
	n := atomic.AddUint64(&uniqueCounter, 1)
	return fmt.Sprintf("%s-%d-%d", base, time.Now().UnixNano(), n)
}

// Verbose controls whether detailed logging is shown during tests
var Verbose = false

// TestResult represents the result of a test
type TestResult struct {
	Name    string
	Passed  bool
	Message string
}

// DefaultReplyTimeout bounds how long a scenario waits for one reply.
const DefaultReplyTimeout = 2 * time.Second

func logAction(testName, action string) {
	if Verbose {
		fmt.Printf("  [%s] %s\n", testName, action)
	}
}

func logResult(testName string, success bool, detail string) {
	if Verbose {
		status := "OK"
		if !success {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %s: %s\n", testName, status, detail)
	}
}

// Options configure a run.
type Options struct {
	Addr string // host:port
	Path string // play path, "/play" when empty

	// UserPrefix starts every generated player id so runs can be told
	// apart in the profile store.
	UserPrefix string

	// Run selects scenarios whose name contains it; empty runs all.
	Run string

	ReplyTimeout time.Duration
}

// runner carries what every scenario needs.
type runner struct {
	opts    Options
	timeout time.Duration
	catalog *narration.Catalog
}

func (r *runner) user(base string) string {
	if r.opts.UserPrefix == "" {
		return uniqueUser(base)
	}
	return uniqueUser(r.opts.UserPrefix + "-" + base)
}

// text returns the narration a scenario expects, as the server renders it.
func (r *runner) text(locale string, key narration.Key) string {
	return strings.TrimSpace(r.catalog.Text(r.catalog.Match(locale), key))
}

func (r *runner) connect(name, user, locale string) (*testclient.TestClient, error) {
	logAction(name, fmt.Sprintf("connecting as %s (%s)", user, locale))
	return testclient.NewTestClient(name, r.opts.Addr, testclient.Options{User: user, Locale: locale, Path: r.opts.Path})
}

// reconnect is connect for a player whose previous connection was just
// closed. The server allows one connection per player, so it retries until
// the old seat is released.
func (r *runner) reconnect(name, user, locale string) (*testclient.TestClient, error) {
	deadline := time.Now().Add(r.timeout)
	for {
		c, err := r.connect(name, user, locale)
		if err == nil || time.Now().After(deadline) {
			return c, err
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// say sends a line and waits for the narration of key.
func (r *runner) say(name string, c *testclient.TestClient, line, locale string, key narration.Key) bool {
	c.ClearMessages()
	logAction(name, "say "+line)
	if err := c.SendCommand(line); err != nil {
		logResult(name, false, err.Error())
		return false
	}
	ok := c.WaitForMessage(r.text(locale, key), r.timeout)
	logResult(name, ok, fmt.Sprintf("expected %s", key))
	if !ok && Verbose {
		c.PrintMessages()
	}
	return ok
}

func pass(name, msg string) TestResult {
	return TestResult{Name: name, Passed: true, Message: msg}
}

func fail(name, msg string) TestResult {
	return TestResult{Name: name, Passed: false, Message: msg}
}

// scenario is one named end-to-end check.
type scenario struct {
	name string
	run  func(*runner) TestResult
}

var scenarios = []scenario{
	// Connection
	{"Launch", (*runner).TestLaunch},
	{"LaunchGerman", (*runner).TestLaunchGerman},
	{"StopClosesConnection", (*runner).TestStopClosesConnection},

	// First floor
	{"Help", (*runner).TestHelp},
	{"Misunderstood", (*runner).TestMisunderstood},
	{"Descend", (*runner).TestDescend},

	// Second floor and progress
	{"LadderCapture", (*runner).TestLadderCapture},
	{"ResumeAfterDescend", (*runner).TestResumeAfterDescend},
	{"WarpLocked", (*runner).TestWarpLocked},
}

// ScenarioNames lists the scenarios selected by filter, in run order.
func ScenarioNames(filter string) []string {
	var names []string
	for _, s := range scenarios {
		if strings.Contains(s.name, filter) {
			names = append(names, s.name)
		}
	}
	return names
}

// RunAllTests plays every selected scenario against the server.
func RunAllTests(opts Options) []TestResult {
	catalog, err := narration.Load()
	if err != nil {
		return []TestResult{fail("LoadNarration", err.Error())}
	}
	r := &runner{opts: opts, timeout: opts.ReplyTimeout, catalog: catalog}
	if r.timeout <= 0 {
		r.timeout = DefaultReplyTimeout
	}

	results := make([]TestResult, 0, len(scenarios))
	for _, s := range scenarios {
		if !strings.Contains(s.name, opts.Run) {
			continue
		}
		results = append(results, s.run(r))
	}
	return results
}

// PrintResults prints a summary of the results
func PrintResults(results []TestResult) {
	passed := 0
	failed := 0

	fmt.Println("============================================================")
	fmt.Println("Integration Test Results")
	fmt.Println("============================================================")
	fmt.Println()

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			failed++
		} else {
			passed++
		}
		fmt.Printf("[%s] %s: %s\n", status, r.Name, r.Message)
	}

	fmt.Println()
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Total: %d | Passed: %d | Failed: %d\n", len(results), passed, failed)
	fmt.Println("------------------------------------------------------------")
}

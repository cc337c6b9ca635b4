package test

import (
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/testclient"
)

const english = "en-US"

func (r *runner) TestLaunch() TestResult {
	name := "Launch"
	c, err := r.connect(name, r.user("launch"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !c.WaitForMessage(r.text(english, narration.KeyStartArrive), r.timeout) {
		return fail(name, "launch did not start outside the house")
	}
	return pass(name, "new player starts outside the house")
}

func (r *runner) TestLaunchGerman() TestResult {
	name := "LaunchGerman"
	c, err := r.connect(name, r.user("launch-de"), "de-DE")
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !c.WaitForMessage(r.text("de-DE", narration.KeyStartArrive), r.timeout) {
		return fail(name, "launch was not narrated in German")
	}
	return pass(name, "de-DE players hear German narration")
}

func (r *runner) TestStopClosesConnection() TestResult {
	name := "StopClosesConnection"
	c, err := r.connect(name, r.user("stop"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !r.say(name, c, "stop", english, narration.KeyGoodbye) {
		return fail(name, "no goodbye after stop")
	}
	if !c.WaitForClose(r.timeout) {
		return fail(name, "connection stayed open after goodbye")
	}
	return pass(name, "stop says goodbye and closes the connection")
}

func (r *runner) TestHelp() TestResult {
	name := "Help"
	c, err := r.connect(name, r.user("help"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !r.say(name, c, "help", english, narration.KeyFloor1HallHelp) {
		return fail(name, "help did not describe the hall")
	}
	return pass(name, "help describes the hall")
}

func (r *runner) TestMisunderstood() TestResult {
	name := "Misunderstood"
	c, err := r.connect(name, r.user("confused"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !r.say(name, c, "dance a jig", english, narration.KeyMisunderstood) {
		return fail(name, "unknown line was not answered as misunderstood")
	}
	return pass(name, "unknown lines are misunderstood")
}

// descend walks a fresh player through both conversations and down the
// ladder.
func (r *runner) descend(name string, c *testclient.TestClient) bool {
	steps := []struct {
		line string
		key  narration.Key
	}{
		{"go right", narration.KeyFloor1LarryRoomVisit},
		{"talk to larry", narration.KeyFloor1LarryRefuse},
		{"go back", narration.KeyFloor1HallRevisit},
		{"go left", narration.KeyFloor1BarryRoomVisit},
		{"talk to barry", narration.KeyFloor1BarryAsked},
		{"go back", narration.KeyFloor1HallRevisit},
		{"go right", narration.KeyFloor1LarryRoomRevisit},
		{"talk to larry", narration.KeyFloor1LarryQuestion},
		{"yes", narration.KeyFloor1LarryCorridor},
	}
	for _, s := range steps {
		if !r.say(name, c, s.line, english, s.key) {
			return false
		}
	}
	return true
}

func (r *runner) TestDescend() TestResult {
	name := "Descend"
	c, err := r.connect(name, r.user("descend"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !r.descend(name, c) {
		return fail(name, "could not reach the second floor")
	}
	return pass(name, "Barry and Larry let the player down the ladder")
}

func (r *runner) TestLadderCapture() TestResult {
	name := "LadderCapture"
	c, err := r.connect(name, r.user("capture"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !r.descend(name, c) {
		return fail(name, "could not reach the second floor")
	}
	if !r.say(name, c, "go forward", english, narration.KeyFloor2CaughtIntro) {
		return fail(name, "walking into the armour was not a capture")
	}
	return pass(name, "walking forward from the ladder meets the armour")
}

func (r *runner) TestResumeAfterDescend() TestResult {
	name := "ResumeAfterDescend"
	user := r.user("resume")

	first, err := r.connect(name, user, english)
	if err != nil {
		return fail(name, err.Error())
	}
	ok := r.descend(name, first)
	first.Close()
	if !ok {
		return fail(name, "could not reach the second floor")
	}

	second, err := r.reconnect(name, user, english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer second.Close()

	if !second.WaitForMessage(r.text(english, narration.KeyResumeFloor2Intro), r.timeout) {
		return fail(name, "returning player did not resume on the second floor")
	}
	return pass(name, "progress survives a reconnect")
}

func (r *runner) TestWarpLocked() TestResult {
	name := "WarpLocked"
	c, err := r.connect(name, r.user("warp"), english)
	if err != nil {
		return fail(name, err.Error())
	}
	defer c.Close()

	if !r.say(name, c, "warp to floor 3", english, narration.KeyWarpLocked) {
		return fail(name, "warp was not refused")
	}
	return pass(name, "warp stays locked until the game is finished")
}

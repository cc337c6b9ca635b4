package house

import "strings"

// Intent names sent by the voice platform.
const (
	IntentLaunch = ""

	IntentStop      = "AMAZON.StopIntent"
	IntentCancel    = "AMAZON.CancelIntent"
	IntentStartOver = "AMAZON.StartOverIntent"
	IntentHelp      = "AMAZON.HelpIntent"
	IntentRepeat    = "AMAZON.RepeatIntent"
	IntentYes       = "AMAZON.YesIntent"
	IntentNo        = "AMAZON.NoIntent"

	IntentPlay = "PlayIntent"
	IntentWarp = "WarpIntent"

	IntentLeft               = "LeftIntent"
	IntentRight              = "RightIntent"
	IntentForward            = "ForwardIntent"
	IntentBackward           = "BackwardIntent"
	IntentFirstFloorBackward = "FirstFloorBackwardIntent"
	IntentContinue           = "ContinueIntent"
	IntentContinueLeft       = "ContinueLeftIntent"
	IntentContinueRight      = "ContinueRightIntent"

	IntentTalk         = "TalkIntent"
	IntentTalkToBarry  = "TalkToBarryIntent"
	IntentTalkToLarry  = "TalkToLarryIntent"
	IntentBarrySaidYes = "BarrySaidYesIntent"
	IntentBarrySaidNo  = "BarrySaidNoIntent"

	IntentCake       = "CakeIntent"
	IntentDoughnut   = "DoughnutIntent"
	IntentBothTreats = "BothTreatsIntent"
)

// SlotFloor is the warp target slot.
const SlotFloor = "floor"

// restates reports whether the intent asks for the current situation again.
// A failed warp falls through as one of these.
func restates(intent string) bool {
	switch intent {
	case IntentRepeat, IntentPlay, IntentWarp:
		return true
	}
	return false
}

var floorWords = map[string]int{
	"1": 1, "one": 1, "first": 1, "eins": 1, "erste": 1,
	"2": 2, "two": 2, "second": 2, "zwei": 2, "zweite": 2,
	"3": 3, "three": 3, "third": 3, "drei": 3, "dritte": 3,
}

// ParseFloor reads a warp slot value.
func ParseFloor(value string) (int, bool) {
	n, ok := floorWords[strings.ToLower(strings.TrimSpace(value))]
	return n, ok
}

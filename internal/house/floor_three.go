package house

import (
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
)

// ending is one of the three ways to finish the game.
type ending struct {
	title  narration.Key
	speech narration.Key
}

var endings = map[string]ending{
	IntentCake:       {narration.KeyTitleCake, narration.KeyFloor3EndingCake},
	IntentDoughnut:   {narration.KeyTitleDoughnut, narration.KeyFloor3EndingDoughnut},
	IntentBothTreats: {narration.KeyTitleBoth, narration.KeyFloor3EndingBoth},
}

// finished is written when any ending is reached: warp unlocks and the next
// game starts from the front door.
var finished = profile.Progress{FloorNumber: 1, UnlockWarp: true}

// playFloorThree handles a turn in the treat room.
func playFloorThree(intent string) Reply {
	if e, ok := endings[intent]; ok {
		return Reply{
			Script: narration.Script{
				Title:  e.title,
				Speech: []narration.Segment{narration.Say(e.speech), narration.Play(narration.CueJingle)},
			},
			EndSession: true,
			Progress:   finished,
		}
	}

	speech, reprompt := narration.KeyFloor3Invalid, narration.KeyFloor3InvalidReprompt
	switch {
	case intent == IntentHelp:
		speech, reprompt = narration.KeyFloor3Help, narration.KeyFloor3Reprompt
	case restates(intent):
		speech, reprompt = narration.KeyFloor3Choice, narration.KeyFloor3Reprompt
	}

	return Reply{
		State: session.FloorThree{},
		Script: narration.Script{
			Title:    narration.KeyTitleChoice,
			Speech:   []narration.Segment{narration.Say(speech)},
			Reprompt: reprompt,
		},
	}
}

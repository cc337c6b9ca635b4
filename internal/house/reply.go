package house

import (
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
)

// Turn is one player utterance.
type Turn struct {
	Intent     string
	Slots      map[string]string
	Attributes map[string]any
	UserID     string
}

// Reply is the engine's answer to a turn.
type Reply struct {
	// State is the next session state; nil clears the session.
	State      session.State
	Script     narration.Script
	EndSession bool
	// Progress is written to the player's profile after the turn.
	Progress profile.Progress
	// Err is set when the turn failed on a malformed session.
	Err error
}

// Attributes returns the session attributes to echo back to the platform.
func (r Reply) Attributes() map[string]any {
	return session.Encode(r.State)
}

func misunderstood(s session.State) Reply {
	return Reply{
		State: s,
		Script: narration.Script{
			Title:    narration.KeyTitleInvalid,
			Speech:   []narration.Segment{narration.Say(narration.KeyMisunderstood)},
			Reprompt: narration.KeyMisunderstood,
		},
	}
}

func failure(err *session.FieldError) Reply {
	return Reply{
		Script: narration.Script{
			Title:  narration.KeyTitleInvalid,
			Speech: []narration.Segment{narration.Say(narration.KeyFailure, err.Code)},
		},
		EndSession: true,
		Err:        err,
	}
}

func goodbye() Reply {
	return Reply{
		Script: narration.Script{
			Title:  narration.KeyTitleGoodbye,
			Speech: []narration.Segment{narration.Say(narration.KeyGoodbye), narration.Play(narration.CueJingle)},
		},
		EndSession: true,
	}
}

// startGame puts the player outside the house.
func startGame() Reply {
	return Reply{
		State: session.NewFloorOne(),
		Script: narration.Script{
			Title: narration.KeyTitleStart,
			Speech: []narration.Segment{
				narration.Say(narration.KeyStartArrive),
				narration.Play(narration.CueDoor),
				narration.Say(narration.KeyStartDoors),
			},
			Reprompt: narration.KeyStartReprompt,
		},
	}
}

package house

import (
	"github.com/mysterioushouse/server/internal/labyrinth"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
)

// junctionText maps a corridor shape to its description and reprompt.
var junctionText = map[labyrinth.Junction][2]narration.Key{
	labyrinth.JunctionStart:      {narration.KeyFloor2JunctionStart, narration.KeyFloor2JunctionStartReprompt},
	labyrinth.JunctionCrossroads: {narration.KeyFloor2JunctionCrossroads, narration.KeyFloor2JunctionCrossroadsReprompt},
	labyrinth.JunctionTeeLeft:    {narration.KeyFloor2JunctionTeeLeft, narration.KeyFloor2JunctionTeeLeftReprompt},
	labyrinth.JunctionTeeRight:   {narration.KeyFloor2JunctionTeeRight, narration.KeyFloor2JunctionTeeRightReprompt},
	labyrinth.JunctionFork:       {narration.KeyFloor2JunctionFork, narration.KeyFloor2JunctionForkReprompt},
	labyrinth.JunctionCorridor:   {narration.KeyFloor2JunctionCorridor, narration.KeyFloor2JunctionCorridorReprompt},
	labyrinth.JunctionBendLeft:   {narration.KeyFloor2JunctionBendLeft, narration.KeyFloor2JunctionBendLeftReprompt},
	labyrinth.JunctionBendRight:  {narration.KeyFloor2JunctionBendRight, narration.KeyFloor2JunctionBendRightReprompt},
	labyrinth.JunctionDeadEnd:    {narration.KeyFloor2JunctionDeadEnd, narration.KeyFloor2JunctionDeadEndReprompt},
}

func junctionKeys(s session.FloorTwo) (describe, reprompt narration.Key) {
	text := junctionText[labyrinth.JunctionAt(s.Facing, s.Player.X, s.Player.Y)]
	return text[0], text[1]
}

// step describes one movement request.
type step struct {
	move    labyrinth.Move
	flavour narration.Key
	invalid narration.Key
}

var (
	stepForward     = step{labyrinth.Forward, narration.KeyFloor2StepForward, narration.KeyFloor2InvalidForward}
	stepBackward    = step{labyrinth.Backward, narration.KeyFloor2StepBackward, narration.KeyFloor2InvalidBackward}
	stepLeft        = step{labyrinth.Left, narration.KeyFloor2StepLeft, narration.KeyFloor2InvalidLeft}
	stepRight       = step{labyrinth.Right, narration.KeyFloor2StepRight, narration.KeyFloor2InvalidRight}
	stepFollowLeft  = step{labyrinth.Left, narration.KeyFloor2StepFollowLeft, narration.KeyFloor2InvalidLeft}
	stepFollowRight = step{labyrinth.Right, narration.KeyFloor2StepFollowRight, narration.KeyFloor2InvalidRight}
)

// playFloorTwo handles a turn in the corridor maze.
func playFloorTwo(s session.FloorTwo, intent string) Reply {
	switch {
	case intent == IntentHelp:
		return movementOptions(s, true)
	case restates(intent):
		return movementOptions(s, false)
	}

	switch intent {
	case IntentForward:
		return tryStep(s, stepForward)
	case IntentBackward:
		return tryStep(s, stepBackward)
	case IntentLeft:
		return tryStep(s, stepLeft)
	case IntentContinueLeft:
		return tryStep(s, stepFollowLeft)
	case IntentRight:
		return tryStep(s, stepRight)
	case IntentContinueRight:
		return tryStep(s, stepFollowRight)
	case IntentContinue:
		return keepGoing(s)
	}

	return misunderstood(s)
}

func movementOptions(s session.FloorTwo, help bool) Reply {
	describe, reprompt := junctionKeys(s)

	var speech []narration.Segment
	if help {
		speech = append(speech, narration.Say(narration.KeyFloor2Help))
	}
	speech = append(speech, narration.Say(describe))

	return Reply{
		State:  s,
		Script: narration.Script{Title: narration.KeyTitleCorridor, Speech: speech, Reprompt: reprompt},
	}
}

// keepGoing follows the corridor: a lone side turn is taken, otherwise the
// player walks forward.
func keepGoing(s session.FloorTwo) Reply {
	d := labyrinth.RelativeDirections(s.Facing, s.Player.X, s.Player.Y)
	switch {
	case !d.Forward && !d.Left && d.Right:
		return walk(s, stepFollowRight)
	case !d.Forward && d.Left && !d.Right:
		return walk(s, stepFollowLeft)
	case d.Forward:
		return walk(s, stepForward)
	}
	return rejectStep(s, narration.KeyFloor2InvalidContinue)
}

func tryStep(s session.FloorTwo, st step) Reply {
	d := labyrinth.RelativeDirections(s.Facing, s.Player.X, s.Player.Y)
	if !d.Has(st.move) {
		return rejectStep(s, st.invalid)
	}
	return walk(s, st)
}

func rejectStep(s session.FloorTwo, reason narration.Key) Reply {
	_, reprompt := junctionKeys(s)
	return Reply{
		State: s,
		Script: narration.Script{
			Title:    narration.KeyTitleInvalid,
			Speech:   []narration.Segment{narration.Say(reason), narration.Say(reprompt)},
			Reprompt: reprompt,
		},
	}
}

// walk moves the player one cell. The armour moves once from where it stood
// before the step; meeting it sends the player back to the ladder.
func walk(s session.FloorTwo, st step) Reply {
	heading := labyrinth.Heading(s.Facing, st.move)
	player := s.Player.Step(heading)
	pursuer := labyrinth.AdvancePursuer(s.Pursuer)

	if player == pursuer {
		return Reply{
			State: session.NewFloorTwo(),
			Script: narration.Script{
				Title: narration.KeyTitleCaught,
				Speech: []narration.Segment{
					narration.Say(st.flavour),
					narration.Say(narration.KeyFloor2CaughtIntro),
					narration.Play(narration.CueArmour),
					narration.Say(narration.KeyFloor2CaughtRestart),
				},
				Reprompt: narration.KeyFloor2CaughtReprompt,
			},
		}
	}

	if player == labyrinth.Exit {
		return Reply{
			State: session.FloorThree{},
			Script: narration.Script{
				Title: narration.KeyTitleChoice,
				Speech: []narration.Segment{
					narration.Say(st.flavour),
					narration.Say(narration.KeyFloor2EscapeIntro),
					narration.Play(narration.CueHatch),
					narration.Say(narration.KeyFloor2EscapeTreats),
				},
				Reprompt: narration.KeyFloor2EscapeReprompt,
			},
			Progress: profile.Progress{FloorNumber: 3},
		}
	}

	next := session.FloorTwo{Player: player, Facing: heading, Pursuer: pursuer}
	describe, reprompt := junctionKeys(next)
	return Reply{
		State: next,
		Script: narration.Script{
			Title:    narration.KeyTitleCorridor,
			Speech:   []narration.Segment{narration.Say(st.flavour), narration.Say(describe)},
			Reprompt: reprompt,
		},
	}
}

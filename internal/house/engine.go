// Package house is the Mysterious House turn engine. It routes one player
// intent to the floor that currently holds the session and returns the next
// session state, the narration script and any progress to persist.
package house

import (
	"context"
	"errors"

	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
)

// Profiles is the durable progress collaborator. Load never fails; a broken
// store degrades to the default profile. SaveProgress swallows failures.
type Profiles interface {
	Load(ctx context.Context, userID string) profile.Profile
	SaveProgress(ctx context.Context, userID string, update profile.Progress)
}

// Engine plays turns. It holds no per-turn state and is safe for concurrent
// use.
type Engine struct {
	profiles Profiles
}

// NewEngine creates an engine backed by the given profile collaborator.
func NewEngine(profiles Profiles) *Engine {
	return &Engine{profiles: profiles}
}

// turnProfile loads the player's profile on first use and at most once.
type turnProfile struct {
	ctx      context.Context
	profiles Profiles
	userID   string
	loaded   *profile.Profile
}

func (t *turnProfile) get() profile.Profile {
	if t.loaded == nil {
		p := t.profiles.Load(t.ctx, t.userID)
		t.loaded = &p
	}
	return *t.loaded
}

// HandleTurn plays one turn and writes any resulting progress.
func (e *Engine) HandleTurn(ctx context.Context, turn Turn) Reply {
	reply := e.play(ctx, turn)
	if !reply.Progress.Empty() {
		e.profiles.SaveProgress(ctx, turn.UserID, reply.Progress)
	}
	return reply
}

func (e *Engine) play(ctx context.Context, turn Turn) Reply {
	prof := &turnProfile{ctx: ctx, profiles: e.profiles, userID: turn.UserID}

	switch turn.Intent {
	case IntentStop, IntentCancel:
		return goodbye()
	case IntentStartOver:
		return startGame()
	case IntentLaunch:
		return resume(prof.get())
	}

	var warning narration.Key
	if turn.Intent == IntentWarp {
		target, failed := checkWarp(prof.get(), turn.Slots)
		if failed == "" {
			return warpTo(target)
		}
		warning = failed
	}

	state, err := session.Decode(turn.Attributes)
	if err != nil {
		var fe *session.FieldError
		if !errors.As(err, &fe) {
			fe = &session.FieldError{Reason: err.Error()}
		}
		logger.Warning("Malformed session", "code", fe.Code, "floor", fe.Floor, "field", fe.Field, "reason", fe.Reason)
		return failure(fe)
	}

	var reply Reply
	switch s := state.(type) {
	case session.FloorOne:
		reply = playFloorOne(s, turn.Intent)
	case session.FloorTwo:
		reply = playFloorTwo(s, turn.Intent)
	case session.FloorThree:
		reply = playFloorThree(turn.Intent)
	default:
		// No floor in play. A failed warp still warns before resuming.
		reply = resume(prof.get())
	}

	if warning != "" {
		reply.Script = reply.Script.Prepend(narration.Say(warning))
	}
	return reply
}

// checkWarp validates a warp request. On failure it returns the warning to
// prefix to the ordinary reply.
func checkWarp(p profile.Profile, slots map[string]string) (int, narration.Key) {
	if !p.CanWarp {
		return 0, narration.KeyWarpLocked
	}
	value, ok := slots[SlotFloor]
	if !ok || value == "" {
		return 0, narration.KeyWarpInvalidTarget
	}
	floor, ok := ParseFloor(value)
	if !ok {
		return 0, narration.KeyWarpInvalidNumber
	}
	return floor, ""
}

func warpTo(floor int) Reply {
	switch floor {
	case 2:
		return Reply{
			State: session.NewFloorTwo(),
			Script: narration.Script{
				Title: narration.KeyTitleWarpFloor2,
				Speech: []narration.Segment{
					narration.Say(narration.KeyWarpFloor2Intro),
					narration.Play(narration.CueJam),
					narration.Say(narration.KeyWarpFloor2Sticky),
					narration.Play(narration.CueArmour),
					narration.Say(narration.KeyWarpFloor2Options),
				},
				Reprompt: narration.KeyWarpFloor2Reprompt,
			},
		}
	case 3:
		return Reply{
			State: session.FloorThree{},
			Script: narration.Script{
				Title: narration.KeyTitleWarpFloor3,
				Speech: []narration.Segment{
					narration.Say(narration.KeyWarpFloor3Intro),
					narration.Play(narration.CueHatch),
					narration.Say(narration.KeyWarpFloor3Treats),
				},
				Reprompt: narration.KeyWarpFloor3Reprompt,
			},
		}
	default:
		return startGame()
	}
}

// resume returns the player to the floor saved in their profile.
func resume(p profile.Profile) Reply {
	switch p.FloorNumber {
	case 2:
		return Reply{
			State: session.NewFloorTwo(),
			Script: narration.Script{
				Title: narration.KeyTitleResumeFloor2,
				Speech: []narration.Segment{
					narration.Say(narration.KeyResumeFloor2Intro),
					narration.Play(narration.CueJam),
					narration.Say(narration.KeyResumeFloor2Sticky),
					narration.Play(narration.CueArmour),
					narration.Say(narration.KeyResumeFloor2Options),
				},
				Reprompt: narration.KeyResumeFloor2Reprompt,
			},
		}
	case 3:
		return Reply{
			State: session.FloorThree{},
			Script: narration.Script{
				Title: narration.KeyTitleResumeFloor3,
				Speech: []narration.Segment{
					narration.Say(narration.KeyResumeFloor3Intro),
					narration.Play(narration.CueHatch),
					narration.Say(narration.KeyResumeFloor3Treats),
				},
				Reprompt: narration.KeyResumeFloor3Reprompt,
			},
		}
	default:
		return startGame()
	}
}

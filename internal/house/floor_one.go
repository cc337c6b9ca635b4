package house

import (
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
)

// roomText holds the narration of one first-floor room.
type roomText struct {
	title          narration.Key
	visit          narration.Key
	visitOptions   narration.Key
	revisit        narration.Key
	revisitOptions narration.Key
	help           narration.Key
	reprompt       narration.Key
	invalidPrompt  narration.Key
}

var rooms = map[session.Room]roomText{
	session.BarrysRoom: {
		title:          narration.KeyTitleBarryRoom,
		visit:          narration.KeyFloor1BarryRoomVisit,
		visitOptions:   narration.KeyFloor1BarryRoomVisitOptions,
		revisit:        narration.KeyFloor1BarryRoomRevisit,
		revisitOptions: narration.KeyFloor1BarryRoomRevisitOptions,
		help:           narration.KeyFloor1BarryRoomHelp,
		reprompt:       narration.KeyFloor1BarryRoomReprompt,
		invalidPrompt:  narration.KeyFloor1InvalidBarryReprompt,
	},
	session.EntranceHall: {
		title:          narration.KeyTitleHall,
		visit:          narration.KeyFloor1HallVisit,
		visitOptions:   narration.KeyFloor1HallVisitOptions,
		revisit:        narration.KeyFloor1HallRevisit,
		revisitOptions: narration.KeyFloor1HallRevisitOptions,
		help:           narration.KeyFloor1HallHelp,
		reprompt:       narration.KeyFloor1HallReprompt,
		invalidPrompt:  narration.KeyFloor1InvalidHallReprompt,
	},
	session.LarrysRoom: {
		title:          narration.KeyTitleLarryRoom,
		visit:          narration.KeyFloor1LarryRoomVisit,
		visitOptions:   narration.KeyFloor1LarryRoomVisitOptions,
		revisit:        narration.KeyFloor1LarryRoomRevisit,
		revisitOptions: narration.KeyFloor1LarryRoomRevisitOptions,
		help:           narration.KeyFloor1LarryRoomHelp,
		reprompt:       narration.KeyFloor1LarryRoomReprompt,
		invalidPrompt:  narration.KeyFloor1InvalidLarryReprompt,
	},
}

// playFloorOne handles a turn in the entrance floor.
func playFloorOne(s session.FloorOne, intent string) Reply {
	if s.LarryAsking {
		return answerLarry(s, intent)
	}

	switch {
	case intent == IntentHelp:
		return describeRoom(s, firstLook(s), false, true)
	case restates(intent):
		return describeRoom(s, firstLook(s), false, false)
	}

	switch intent {
	case IntentLeft:
		if s.Position != session.EntranceHall {
			return invalidAction(s, narration.KeyFloor1InvalidLeft)
		}
		next := s
		next.Position = session.BarrysRoom
		next.VisitedBarry = true
		return describeRoom(next, !s.VisitedBarry, true, false)

	case IntentRight:
		if s.Position != session.EntranceHall {
			return invalidAction(s, narration.KeyFloor1InvalidRight)
		}
		next := s
		next.Position = session.LarrysRoom
		next.VisitedLarry = true
		return describeRoom(next, !s.VisitedLarry, true, false)

	case IntentBackward, IntentFirstFloorBackward:
		if s.Position == session.EntranceHall {
			return invalidAction(s, narration.KeyFloor1InvalidBackward)
		}
		next := s
		next.Position = session.EntranceHall
		return describeRoom(next, false, true, false)

	case IntentTalk, IntentTalkToBarry, IntentTalkToLarry:
		switch s.Position {
		case session.BarrysRoom:
			return talkToBarry(s)
		case session.LarrysRoom:
			return talkToLarry(s)
		default:
			return invalidAction(s, narration.KeyFloor1InvalidTalk)
		}
	}

	return misunderstood(s)
}

// firstLook reports whether the player has not yet seen the current room
// from the inside. Only the hall can be looked at before it was entered.
func firstLook(s session.FloorOne) bool {
	return s.Position == session.EntranceHall && !s.VisitedBarry && !s.VisitedLarry
}

func describeRoom(s session.FloorOne, firstVisit, walkedIn, help bool) Reply {
	text := rooms[s.Position]

	var speech []narration.Segment
	if walkedIn {
		speech = append(speech, narration.Play(narration.CueDoor))
	}
	if firstVisit {
		speech = append(speech, narration.Say(text.visit))
	} else {
		speech = append(speech, narration.Say(text.revisit))
	}
	if help {
		speech = append(speech, narration.Say(text.help))
	}
	if firstVisit {
		speech = append(speech, narration.Say(text.visitOptions))
	} else {
		speech = append(speech, narration.Say(text.revisitOptions))
	}

	return Reply{
		State:  s,
		Script: narration.Script{Title: text.title, Speech: speech, Reprompt: text.reprompt},
	}
}

func invalidAction(s session.FloorOne, reason narration.Key) Reply {
	prompt := rooms[s.Position].invalidPrompt
	return Reply{
		State: s,
		Script: narration.Script{
			Title:    narration.KeyTitleInvalid,
			Speech:   []narration.Segment{narration.Say(reason), narration.Say(prompt)},
			Reprompt: prompt,
		},
	}
}

// talkToBarry answers in three tiers. Whatever the tier, Barry now counts
// as spoken to.
func talkToBarry(s session.FloorOne) Reply {
	var title, speech, reprompt narration.Key
	switch {
	case s.SpokenToBarry:
		title, speech, reprompt = narration.KeyTitleBarryReply, narration.KeyFloor1BarryAgain, narration.KeyFloor1BarryAgainReprompt
	case s.SpokenToLarry:
		title, speech, reprompt = narration.KeyTitleBarryReply, narration.KeyFloor1BarryAsked, narration.KeyFloor1BarryAskedReprompt
	default:
		title, speech, reprompt = narration.KeyTitleBarryRefuse, narration.KeyFloor1BarryRefuse, narration.KeyFloor1BarryRefuseReprompt
	}

	next := s
	next.SpokenToBarry = true
	return Reply{
		State: next,
		Script: narration.Script{
			Title:    title,
			Speech:   []narration.Segment{narration.Say(speech)},
			Reprompt: reprompt,
		},
	}
}

func talkToLarry(s session.FloorOne) Reply {
	next := s
	speech, reprompt := narration.KeyFloor1LarryRefuse, narration.KeyFloor1LarryReprompt
	switch {
	case s.SpokenToLarry && s.SpokenToBarry:
		speech, reprompt = narration.KeyFloor1LarryQuestion, narration.KeyFloor1LarryQuestion
		next.LarryAsking = true
	case s.SpokenToLarry:
		speech = narration.KeyFloor1LarryAgain
	default:
		next.SpokenToLarry = true
	}

	return Reply{
		State: next,
		Script: narration.Script{
			Title:    narration.KeyTitleLarryRoom,
			Speech:   []narration.Segment{narration.Say(speech)},
			Reprompt: reprompt,
		},
	}
}

// answerLarry handles the turn after Larry asked whether Barry said yes.
func answerLarry(s session.FloorOne, intent string) Reply {
	switch intent {
	case IntentYes, IntentBarrySaidYes:
		return descend()

	case IntentNo, IntentBarrySaidNo:
		// Larry sends the player back to Barry; spokenToLarry stays set.
		next := s
		next.SpokenToBarry = false
		next.LarryAsking = false
		return Reply{
			State: next,
			Script: narration.Script{
				Title:    narration.KeyTitleLarryRoom,
				Speech:   []narration.Segment{narration.Say(narration.KeyFloor1LarryToldNo)},
				Reprompt: narration.KeyFloor1LarryRoomReprompt,
			},
		}
	}

	return misunderstood(s)
}

// descend lets the player down the ladder to the second floor.
func descend() Reply {
	return Reply{
		State: session.NewFloorTwo(),
		Script: narration.Script{
			Title: narration.KeyTitleCorridor,
			Speech: []narration.Segment{
				narration.Say(narration.KeyFloor1LarryToldYes),
				narration.Play(narration.CueJam),
				narration.Say(narration.KeyFloor1LarryStickyFloor),
				narration.Play(narration.CueArmour),
				narration.Say(narration.KeyFloor1LarryCorridor),
			},
			Reprompt: narration.KeyFloor2JunctionStartReprompt,
		},
		Progress: profile.Progress{FloorNumber: 2},
	}
}

package house

import (
	"testing"

	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorOneAt(room session.Room) session.FloorOne {
	s := session.NewFloorOne()
	s.Position = room
	return s
}

func TestFloorOne_RightToLarrysRoom(t *testing.T) {
	r := playFloorOne(session.NewFloorOne(), IntentRight)

	s, ok := r.State.(session.FloorOne)
	require.True(t, ok)
	assert.Equal(t, session.LarrysRoom, s.Position)
	assert.True(t, s.VisitedLarry)
	assert.False(t, s.VisitedBarry)
	assert.Equal(t, narration.KeyTitleLarryRoom, r.Script.Title)
	assert.Contains(t, r.Script.Keys(), narration.KeyFloor1LarryRoomVisit)
	assert.Equal(t, []narration.Cue{narration.CueDoor}, r.Script.Cues())
	assert.True(t, r.Progress.Empty())
	assert.False(t, r.EndSession)
}

func TestFloorOne_RevisitUsesShortText(t *testing.T) {
	s := session.NewFloorOne()
	s.VisitedBarry = true

	r := playFloorOne(s, IntentLeft)
	assert.Contains(t, r.Script.Keys(), narration.KeyFloor1BarryRoomRevisit)
	assert.NotContains(t, r.Script.Keys(), narration.KeyFloor1BarryRoomVisit)
}

func TestFloorOne_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		room   session.Room
		intent string
		reason narration.Key
	}{
		{"left from Barry's room", session.BarrysRoom, IntentLeft, narration.KeyFloor1InvalidLeft},
		{"right from Larry's room", session.LarrysRoom, IntentRight, narration.KeyFloor1InvalidRight},
		{"back from the hall", session.EntranceHall, IntentBackward, narration.KeyFloor1InvalidBackward},
		{"talk in the hall", session.EntranceHall, IntentTalk, narration.KeyFloor1InvalidTalk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := floorOneAt(tt.room)
			r := playFloorOne(s, tt.intent)
			assert.Equal(t, s, r.State)
			assert.Equal(t, narration.KeyTitleInvalid, r.Script.Title)
			assert.Equal(t, tt.reason, r.Script.Keys()[0])
		})
	}
}

func TestFloorOne_InvalidIsIdempotent(t *testing.T) {
	s := floorOneAt(session.BarrysRoom)
	first := playFloorOne(s, IntentLeft)
	second := playFloorOne(first.State.(session.FloorOne), IntentLeft)
	assert.Equal(t, first.Attributes(), second.Attributes())
	assert.Equal(t, first.Script, second.Script)
}

func TestFloorOne_UnknownIntentIsMisunderstood(t *testing.T) {
	s := floorOneAt(session.LarrysRoom)
	r := playFloorOne(s, IntentCake)
	assert.Equal(t, s, r.State)
	assert.Equal(t, []narration.Key{narration.KeyMisunderstood}, r.Script.Keys())
}

func TestFloorOne_BarryFirst(t *testing.T) {
	r := playFloorOne(floorOneAt(session.BarrysRoom), IntentTalkToBarry)
	s := r.State.(session.FloorOne)
	assert.True(t, s.SpokenToBarry)
	assert.False(t, s.SpokenToLarry)
	assert.Contains(t, r.Script.Keys(), narration.KeyFloor1BarryRefuse)

	again := playFloorOne(s, IntentTalk)
	assert.Equal(t, s, again.State)
	assert.Contains(t, again.Script.Keys(), narration.KeyFloor1BarryAgain)
}

func TestFloorOne_FullConversation(t *testing.T) {
	s := session.NewFloorOne()
	step := func(intent string, want narration.Key) {
		t.Helper()
		r := playFloorOne(s, intent)
		if want != "" {
			assert.Contains(t, r.Script.Keys(), want, intent)
		}
		next, ok := r.State.(session.FloorOne)
		require.True(t, ok, intent)
		s = next
	}

	step(IntentRight, narration.KeyFloor1LarryRoomVisit)
	step(IntentTalk, narration.KeyFloor1LarryRefuse)
	assert.True(t, s.SpokenToLarry)
	step(IntentTalkToLarry, narration.KeyFloor1LarryAgain)
	step(IntentBackward, narration.KeyFloor1HallRevisit)
	step(IntentLeft, narration.KeyFloor1BarryRoomVisit)
	step(IntentTalk, narration.KeyFloor1BarryAsked)
	assert.True(t, s.SpokenToBarry)
	step(IntentFirstFloorBackward, "")
	step(IntentRight, narration.KeyFloor1LarryRoomRevisit)
	step(IntentTalk, narration.KeyFloor1LarryQuestion)
	assert.True(t, s.LarryAsking)

	// Larry only accepts an answer.
	step(IntentHelp, narration.KeyMisunderstood)
	step(IntentLeft, narration.KeyMisunderstood)
	assert.True(t, s.LarryAsking)

	step(IntentNo, narration.KeyFloor1LarryToldNo)
	assert.False(t, s.LarryAsking)
	assert.False(t, s.SpokenToBarry)
	assert.True(t, s.SpokenToLarry)

	step(IntentBackward, "")
	step(IntentLeft, narration.KeyFloor1BarryRoomRevisit)
	step(IntentTalk, narration.KeyFloor1BarryAsked)
	step(IntentBackward, "")
	step(IntentRight, "")
	step(IntentTalk, narration.KeyFloor1LarryQuestion)

	r := playFloorOne(s, IntentBarrySaidYes)
	assert.Equal(t, session.NewFloorTwo(), r.State)
	assert.Equal(t, profile.Progress{FloorNumber: 2}, r.Progress)
	assert.Equal(t, []narration.Cue{narration.CueJam, narration.CueArmour}, r.Script.Cues())
}

func TestFloorOne_LarryAskingWantsAnAnswer(t *testing.T) {
	s := floorOneAt(session.LarrysRoom)
	s.SpokenToBarry, s.SpokenToLarry, s.VisitedLarry, s.LarryAsking = true, true, true, true

	answers := map[string]bool{IntentYes: true, IntentBarrySaidYes: true, IntentNo: true, IntentBarrySaidNo: true}
	for _, intent := range allIntents {
		if answers[intent] {
			continue
		}
		r := playFloorOne(s, intent)
		assert.Equal(t, s, r.State, intent)
		assert.Equal(t, []narration.Key{narration.KeyMisunderstood}, r.Script.Keys(), intent)
		assert.Equal(t, profile.Progress{}, r.Progress, intent)
	}
}

func TestFloorOne_YesIntentsDescend(t *testing.T) {
	s := floorOneAt(session.LarrysRoom)
	s.SpokenToBarry, s.SpokenToLarry, s.LarryAsking = true, true, true

	for _, intent := range []string{IntentYes, IntentBarrySaidYes} {
		r := playFloorOne(s, intent)
		assert.IsType(t, session.FloorTwo{}, r.State, intent)
	}
	for _, intent := range []string{IntentNo, IntentBarrySaidNo} {
		r := playFloorOne(s, intent)
		assert.IsType(t, session.FloorOne{}, r.State, intent)
	}
}

// The talk flags only become true, except for the reset when the player
// tells Larry that Barry said no.
func TestFloorOne_FlagsAreMonotonic(t *testing.T) {
	for _, s := range reachableFloorOne() {
		for _, intent := range allIntents {
			next, ok := playFloorOne(s, intent).State.(session.FloorOne)
			if !ok {
				continue
			}
			if s.LarryAsking && (intent == IntentNo || intent == IntentBarrySaidNo) {
				assert.False(t, next.SpokenToBarry)
				assert.Equal(t, s.SpokenToLarry, next.SpokenToLarry)
				assert.False(t, next.LarryAsking)
				continue
			}
			if s.SpokenToBarry {
				assert.True(t, next.SpokenToBarry, "%+v %s", s, intent)
			}
			if s.SpokenToLarry {
				assert.True(t, next.SpokenToLarry, "%+v %s", s, intent)
			}
			if s.VisitedBarry {
				assert.True(t, next.VisitedBarry)
			}
			if s.VisitedLarry {
				assert.True(t, next.VisitedLarry)
			}
		}
	}
}

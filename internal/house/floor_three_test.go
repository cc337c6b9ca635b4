package house

import (
	"testing"

	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestFloorThree_Endings(t *testing.T) {
	tests := []struct {
		intent string
		title  narration.Key
		ending narration.Key
	}{
		{IntentCake, narration.KeyTitleCake, narration.KeyFloor3EndingCake},
		{IntentDoughnut, narration.KeyTitleDoughnut, narration.KeyFloor3EndingDoughnut},
		{IntentBothTreats, narration.KeyTitleBoth, narration.KeyFloor3EndingBoth},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			r := playFloorThree(tt.intent)
			assert.Nil(t, r.State)
			assert.Empty(t, r.Attributes())
			assert.True(t, r.EndSession)
			assert.Equal(t, profile.Progress{FloorNumber: 1, UnlockWarp: true}, r.Progress)
			assert.Equal(t, tt.title, r.Script.Title)
			assert.Equal(t, []narration.Key{tt.ending}, r.Script.Keys())
			assert.Equal(t, []narration.Cue{narration.CueJingle}, r.Script.Cues())
		})
	}
}

func TestFloorThree_Prompts(t *testing.T) {
	tests := []struct {
		intent string
		want   narration.Key
	}{
		{IntentHelp, narration.KeyFloor3Help},
		{IntentRepeat, narration.KeyFloor3Choice},
		{IntentWarp, narration.KeyFloor3Choice},
		{IntentLeft, narration.KeyFloor3Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			r := playFloorThree(tt.intent)
			assert.Equal(t, session.FloorThree{}, r.State)
			assert.False(t, r.EndSession)
			assert.True(t, r.Progress.Empty())
			assert.Equal(t, []narration.Key{tt.want}, r.Script.Keys())
		})
	}
}

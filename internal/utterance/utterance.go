// Package utterance maps typed English and German phrases onto the skill's
// intents so the game can be played over text transports.
package utterance

import (
	"strings"
	"unicode"

	"github.com/mysterioushouse/server/internal/house"
	"golang.org/x/text/cases"
)

// Unknown is returned for text that matches no intent.
const Unknown = "UnknownIntent"

type rule struct {
	intent  string
	phrases [][]string
}

func words(s ...string) [][]string {
	out := make([][]string, len(s))
	for i, p := range s {
		out[i] = strings.Fields(p)
	}
	return out
}

// rules are tried in order; more specific phrases come first.
var rules = []rule{
	{house.IntentStartOver, words("start over", "restart", "new game", "von vorne", "neu starten", "neues spiel")},
	{house.IntentCancel, words("cancel", "abbrechen")},
	{house.IntentStop, words("stop", "quit", "goodbye", "stopp", "beenden", "tschüss")},
	{house.IntentHelp, words("help", "what can i do", "hilfe", "was kann ich tun")},
	{house.IntentRepeat, words("repeat", "say that again", "again", "wiederhole", "wiederholen", "nochmal", "noch einmal")},

	{house.IntentBarrySaidYes, words("barry said yes", "barry says yes", "barry hat ja gesagt", "barry sagt ja")},
	{house.IntentBarrySaidNo, words("barry said no", "barry says no", "barry hat nein gesagt", "barry sagt nein")},
	{house.IntentTalkToBarry, words("talk to barry", "speak to barry", "speak with barry", "mit barry")},
	{house.IntentTalkToLarry, words("talk to larry", "speak to larry", "speak with larry", "mit larry")},
	{house.IntentTalk, words("talk", "speak", "chat", "rede", "reden", "sprich", "sprechen")},

	{house.IntentBothTreats, words("both", "cake and doughnut", "doughnut and cake", "beide", "beides")},
	{house.IntentCake, words("cake", "kuchen")},
	{house.IntentDoughnut, words("doughnut", "donut", "krapfen", "berliner")},

	{house.IntentContinueLeft, words("continue left", "keep left", "follow left", "follow the left", "links weiter", "weiter links", "links folgen")},
	{house.IntentContinueRight, words("continue right", "keep right", "follow right", "follow the right", "rechts weiter", "weiter rechts", "rechts folgen")},
	{house.IntentContinue, words("continue", "keep going", "carry on", "go on", "weiter", "weitergehen", "weiterlaufen")},
	{house.IntentLeft, words("left", "links")},
	{house.IntentRight, words("right", "rechts")},
	{house.IntentBackward, words("back", "backward", "backwards", "turn around", "zurück", "rückwärts", "umdrehen")},
	{house.IntentForward, words("forward", "forwards", "ahead", "straight", "down", "vorwärts", "geradeaus", "vor", "runter")},

	{house.IntentYes, words("yes", "yeah", "sure", "ja", "klar")},
	{house.IntentNo, words("no", "nope", "nein")},
	{house.IntentPlay, words("play", "spielen", "spiel")},
}

var warpWords = map[string]bool{
	"warp": true, "teleport": true, "beam": true,
	"teleportiere": true, "teleportieren": true, "springe": true, "beame": true,
}

// fillers never count as the warp target.
var fillers = map[string]bool{
	"me": true, "to": true, "the": true, "floor": true, "level": true, "number": true,
	"mich": true, "zu": true, "zur": true, "zum": true, "in": true, "ins": true, "auf": true,
	"den": true, "die": true, "das": true, "etage": true, "stock": true, "stockwerk": true, "nummer": true,
}

// Parse returns the intent and slot values for a line of text.
func Parse(text string) (string, map[string]string) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Unknown, nil
	}

	for i, tok := range tokens {
		if warpWords[tok] {
			return house.IntentWarp, warpSlots(tokens[i+1:])
		}
	}

	for _, r := range rules {
		for _, p := range r.phrases {
			if contains(tokens, p) {
				return r.intent, nil
			}
		}
	}
	return Unknown, nil
}

func warpSlots(rest []string) map[string]string {
	for i := len(rest) - 1; i >= 0; i-- {
		if !fillers[rest[i]] {
			return map[string]string{house.SlotFloor: rest[i]}
		}
	}
	return nil
}

func tokenize(text string) []string {
	folded := cases.Fold().String(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// contains reports whether phrase occurs as a run of tokens.
func contains(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, w := range phrase {
			if tokens[i+j] != w {
				continue outer
			}
		}
		return true
	}
	return false
}

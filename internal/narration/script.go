package narration

// Cue names a sound effect played inside the speech.
type Cue string

const (
	CueDoor   Cue = "door"
	CueArmour Cue = "armour"
	CueJingle Cue = "jingle"
	CueHatch  Cue = "hatch"
	CueJam    Cue = "jam"
)

// cueFiles maps cues to the audio file names under the audio base URL.
var cueFiles = map[Cue]string{
	CueDoor:   "Door.mp3",
	CueArmour: "Armour.mp3",
	CueJingle: "FinishJingle.mp3",
	CueHatch:  "HatchClose.mp3",
	CueJam:    "Jam.mp3",
}

// Segment is one piece of speech: a catalog message or an audio cue.
type Segment struct {
	Key  Key
	Args []any
	Cue  Cue
}

// Say returns a message segment.
func Say(key Key, args ...any) Segment {
	return Segment{Key: key, Args: args}
}

// Play returns an audio segment.
func Play(cue Cue) Segment {
	return Segment{Cue: cue}
}

// Script is what the engine wants said, before localization.
type Script struct {
	Title    Key
	Speech   []Segment
	Reprompt Key
}

// Prepend returns a copy of the script with segments placed before its
// speech.
func (s Script) Prepend(segments ...Segment) Script {
	if len(segments) == 0 {
		return s
	}
	speech := make([]Segment, 0, len(segments)+len(s.Speech))
	speech = append(speech, segments...)
	speech = append(speech, s.Speech...)
	s.Speech = speech
	return s
}

// Keys returns the message keys of the speech in order.
func (s Script) Keys() []Key {
	keys := make([]Key, 0, len(s.Speech))
	for _, seg := range s.Speech {
		if seg.Key != "" {
			keys = append(keys, seg.Key)
		}
	}
	return keys
}

// Cues returns the audio cues of the speech in order.
func (s Script) Cues() []Cue {
	var cues []Cue
	for _, seg := range s.Speech {
		if seg.Cue != "" {
			cues = append(cues, seg.Cue)
		}
	}
	return cues
}

package session

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mysterioushouse/server/internal/labyrinth"
)

// Attribute keys used on the wire.
const (
	KeyFloor         = "Floor"
	KeyX             = "X"
	KeyY             = "Y"
	KeyVisitedBarry  = "VisitedBarry"
	KeyVisitedLarry  = "VisitedLarry"
	KeySpokenToBarry = "SpokenToBarry"
	KeySpokenToLarry = "SpokenToLarry"
	KeyLarryAsking   = "LarryAsking"
	KeyOrientation   = "OState"
	KeyPursuerX      = "MobX"
	KeyPursuerY      = "MobY"
)

// FieldError reports a session that names a floor but is missing one of
// that floor's fields, or carries a value outside its domain. Code is a
// short diagnostic tag that is read out to the player.
type FieldError struct {
	Code   string
	Floor  Floor
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("session floor %d: %s %s (code %s)", e.Floor, e.Field, e.Reason, e.Code)
}

// Diagnostic codes, one per field and per range check.
const (
	CodeRoomRange      = "One"
	CodeFacingRange    = "Two"
	CodePlayerOffGrid  = "Three"
	CodePursuerOffGrid = "Four"
)

var floorOneCodes = map[string]string{
	KeyX:             "Seven",
	KeyVisitedLarry:  "Eight",
	KeyVisitedBarry:  "Nine",
	KeySpokenToLarry: "Ten",
	KeySpokenToBarry: "Eleven",
	KeyLarryAsking:   "Twelve",
}

var floorTwoCodes = map[string]string{
	KeyX:           "A",
	KeyY:           "B",
	KeyOrientation: "C",
	KeyPursuerX:    "D",
	KeyPursuerY:    "E",
}

// Decode rebuilds the session state from platform attributes. It returns
// (nil, nil) when no floor is recorded, which callers treat as a fresh
// session. A recorded floor with a missing field is a *FieldError.
func Decode(attrs map[string]any) (State, error) {
	if attrs == nil {
		return nil, nil
	}
	raw, ok := attrs[KeyFloor]
	if !ok {
		return nil, nil
	}
	n, ok := asInt(raw)
	if !ok || !Floor(n).Valid() {
		return nil, nil
	}

	switch Floor(n) {
	case FloorOneNumber:
		return decodeFloorOne(attrs)
	case FloorTwoNumber:
		return decodeFloorTwo(attrs)
	default:
		return FloorThree{}, nil
	}
}

func decodeFloorOne(attrs map[string]any) (State, error) {
	r := reader{attrs: attrs, floor: FloorOneNumber, codes: floorOneCodes}

	x := r.int(KeyX)
	s := FloorOne{
		VisitedLarry:  r.bool(KeyVisitedLarry),
		VisitedBarry:  r.bool(KeyVisitedBarry),
		SpokenToLarry: r.bool(KeySpokenToLarry),
		SpokenToBarry: r.bool(KeySpokenToBarry),
		LarryAsking:   r.bool(KeyLarryAsking),
	}
	if r.err != nil {
		return nil, r.err
	}

	s.Position = Room(x)
	if !s.Position.Valid() {
		return nil, &FieldError{Code: CodeRoomRange, Floor: FloorOneNumber, Field: KeyX, Reason: fmt.Sprintf("out of range: %d", x)}
	}
	return s, nil
}

func decodeFloorTwo(attrs map[string]any) (State, error) {
	r := reader{attrs: attrs, floor: FloorTwoNumber, codes: floorTwoCodes}

	x := r.int(KeyX)
	y := r.int(KeyY)
	o := r.int(KeyOrientation)
	px := r.int(KeyPursuerX)
	py := r.int(KeyPursuerY)
	if r.err != nil {
		return nil, r.err
	}

	facing, ok := labyrinth.ParseOrientation(o)
	if !ok {
		return nil, &FieldError{Code: CodeFacingRange, Floor: FloorTwoNumber, Field: KeyOrientation, Reason: fmt.Sprintf("out of range: %d", o)}
	}
	if !labyrinth.InBounds(x, y) {
		return nil, &FieldError{Code: CodePlayerOffGrid, Floor: FloorTwoNumber, Field: KeyX, Reason: fmt.Sprintf("off grid: (%d, %d)", x, y)}
	}
	if !labyrinth.InBounds(px, py) {
		return nil, &FieldError{Code: CodePursuerOffGrid, Floor: FloorTwoNumber, Field: KeyPursuerX, Reason: fmt.Sprintf("off grid: (%d, %d)", px, py)}
	}

	return FloorTwo{
		Player:  labyrinth.Point{X: x, Y: y},
		Facing:  facing,
		Pursuer: labyrinth.Point{X: px, Y: py},
	}, nil
}

// Encode converts a state to platform attributes. A nil state encodes to an
// empty map, which ends the stored session.
func Encode(s State) map[string]any {
	switch st := s.(type) {
	case FloorOne:
		return map[string]any{
			KeyFloor:         int(FloorOneNumber),
			KeyX:             int(st.Position),
			KeyVisitedBarry:  st.VisitedBarry,
			KeyVisitedLarry:  st.VisitedLarry,
			KeySpokenToBarry: st.SpokenToBarry,
			KeySpokenToLarry: st.SpokenToLarry,
			KeyLarryAsking:   st.LarryAsking,
		}
	case FloorTwo:
		return map[string]any{
			KeyFloor:       int(FloorTwoNumber),
			KeyX:           st.Player.X,
			KeyY:           st.Player.Y,
			KeyOrientation: int(st.Facing),
			KeyPursuerX:    st.Pursuer.X,
			KeyPursuerY:    st.Pursuer.Y,
		}
	case FloorThree:
		return map[string]any{KeyFloor: int(FloorThreeNumber)}
	default:
		return map[string]any{}
	}
}

// reader pulls typed fields out of an attribute map and keeps the first
// failure.
type reader struct {
	attrs map[string]any
	floor Floor
	codes map[string]string
	err   error
}

func (r *reader) fail(key, reason string) {
	if r.err != nil {
		return
	}
	r.err = &FieldError{Code: r.codes[key], Floor: r.floor, Field: key, Reason: reason}
}

func (r *reader) int(key string) int {
	raw, ok := r.attrs[key]
	if !ok {
		r.fail(key, "missing")
		return 0
	}
	n, ok := asInt(raw)
	if !ok {
		r.fail(key, fmt.Sprintf("not an integer: %v", raw))
		return 0
	}
	return n
}

func (r *reader) bool(key string) bool {
	raw, ok := r.attrs[key]
	if !ok {
		r.fail(key, "missing")
		return false
	}
	b, ok := raw.(bool)
	if !ok {
		r.fail(key, fmt.Sprintf("not a boolean: %v", raw))
		return false
	}
	return b
}

// asInt accepts the integral number types JSON decoding and Go callers
// produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

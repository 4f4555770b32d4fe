package eventfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"scorebook/internal/retro"
)

// Record kinds as they appear in the first field of an event file line.
const (
	KindID      = "id"
	KindVersion = "version"
	KindInfo    = "info"
	KindStart   = "start"
	KindSub     = "sub"
	KindPlay    = "play"
	KindData    = "data"
	KindComment = "com"
	KindBatAdj  = "badj"
	KindPitAdj  = "padj"
	KindLineAdj = "ladj"
)

// ErrBadRecord reports a record that does not fit its declared kind.
var ErrBadRecord = errors.New("malformed event file record")

// Record is one line of an event file, split into fields. The first
// field (the kind) is held separately from the remaining fields.
type Record struct {
	Kind   string
	Fields []string
}

func (r Record) String() string {
	return r.Kind + "," + strings.Join(r.Fields, ",")
}

func (r Record) field(i int) string {
	if i < len(r.Fields) {
		return r.Fields[i]
	}
	return ""
}

// Game-related info names recognized by Retrosheet event files.
var gameInfoNames = map[string]struct{}{
	"visteam": {}, "hometeam": {}, "date": {}, "number": {},
	"starttime": {}, "daynight": {}, "usedh": {}, "pitches": {},
	"umphome": {}, "ump1b": {}, "ump2b": {}, "ump3b": {},
	"umplf": {}, "umprf": {},
	"fieldcond": {}, "precip": {}, "sky": {}, "temp": {},
	"winddir": {}, "windspeed": {}, "timeofgame": {}, "attendance": {},
	"site": {}, "wp": {}, "lp": {}, "save": {}, "gwrbi": {},
	"htbf": {}, "oscorer": {},
}

// Administrative info names describing how the file itself was produced.
var adminInfoNames = map[string]struct{}{
	"edittime": {}, "howscored": {}, "inputprogvers": {},
	"inputter": {}, "inputtime": {}, "scorer": {}, "translator": {},
}

var intInfoNames = map[string]struct{}{
	"number": {}, "temp": {}, "windspeed": {},
	"timeofgame": {}, "attendance": {},
}

// Info is a normalized info record. Value is empty when the file marked
// the datum as unknown ("unknown", "null", windspeed -1, temp 0, or a
// 0:00 start time).
type Info struct {
	Name  string
	Value string
}

// Int returns the info value as an integer. Unparseable or empty values
// coerce to zero, matching how box score software reads these fields.
func (in Info) Int() int {
	n, err := strconv.Atoi(in.Value)
	if err != nil {
		return 0
	}
	return n
}

// Info interprets the record as an info record.
func (r Record) Info() (Info, error) {
	if r.Kind != KindInfo {
		return Info{}, fmt.Errorf("%w: %q is not an info record", ErrBadRecord, r.Kind)
	}
	if len(r.Fields) < 2 {
		return Info{}, fmt.Errorf("%w: info record needs a name and value", ErrBadRecord)
	}
	name := strings.ToLower(strings.TrimSpace(r.Fields[0]))
	if _, ok := gameInfoNames[name]; !ok {
		if _, ok := adminInfoNames[name]; !ok {
			return Info{}, fmt.Errorf("%w: unknown info name %q", ErrBadRecord, name)
		}
	}
	value := strings.TrimSpace(r.Fields[1])
	switch value {
	case "unknown", "null", "":
		return Info{Name: name}, nil
	}
	switch name {
	case "windspeed":
		if value == "-1" {
			return Info{Name: name}, nil
		}
	case "temp":
		if value == "0" {
			return Info{Name: name}, nil
		}
	case "starttime":
		if value == "0:00" {
			return Info{Name: name}, nil
		}
	}
	if _, ok := intInfoNames[name]; ok {
		if _, err := strconv.Atoi(value); err != nil {
			return Info{Name: name}, nil
		}
	}
	return Info{Name: name, Value: value}, nil
}

// Entrance is a start or sub record: a player taking a lineup slot and
// a fielding position for one side.
type Entrance struct {
	PlayerID     string
	Name         string
	Half         retro.Half
	BattingOrder int
	Position     int
	Sub          bool
}

// Entrance interprets the record as a start or sub record.
func (r Record) Entrance() (Entrance, error) {
	if r.Kind != KindStart && r.Kind != KindSub {
		return Entrance{}, fmt.Errorf("%w: %q is not a lineup record", ErrBadRecord, r.Kind)
	}
	if len(r.Fields) < 5 {
		return Entrance{}, fmt.Errorf("%w: lineup record needs five fields", ErrBadRecord)
	}
	half, err := parseHalf(r.Fields[2])
	if err != nil {
		return Entrance{}, err
	}
	order, err := strconv.Atoi(strings.TrimSpace(r.Fields[3]))
	if err != nil || order < 0 || order > 9 {
		return Entrance{}, fmt.Errorf("%w: batting order %q out of range", ErrBadRecord, r.Fields[3])
	}
	pos, err := strconv.Atoi(strings.TrimSpace(r.Fields[4]))
	if err != nil || pos < 1 || pos > 12 {
		return Entrance{}, fmt.Errorf("%w: position %q out of range", ErrBadRecord, r.Fields[4])
	}
	return Entrance{
		PlayerID:     strings.TrimSpace(r.Fields[0]),
		Name:         strings.Trim(strings.TrimSpace(r.Fields[1]), `"`),
		Half:         half,
		BattingOrder: order,
		Position:     pos,
		Sub:          r.Kind == KindSub,
	}, nil
}

// Play interprets the record as a play record and constructs the lazy
// play parser for it.
func (r Record) Play() (*retro.Play, error) {
	if r.Kind != KindPlay {
		return nil, fmt.Errorf("%w: %q is not a play record", ErrBadRecord, r.Kind)
	}
	if len(r.Fields) < 6 {
		return nil, fmt.Errorf("%w: play record needs six fields", ErrBadRecord)
	}
	inning, err := strconv.Atoi(strings.TrimSpace(r.Fields[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: inning %q", ErrBadRecord, r.Fields[0])
	}
	half, err := parseHalf(r.Fields[1])
	if err != nil {
		return nil, err
	}
	return retro.NewPlay(inning, half, r.Fields[2], r.Fields[3], r.Fields[4], r.Fields[5]), nil
}

// Data is a data record. Retrosheet defines only earned run totals.
type Data struct {
	Kind     string
	PlayerID string
	Value    int
}

// Data interprets the record as a data record.
func (r Record) Data() (Data, error) {
	if r.Kind != KindData {
		return Data{}, fmt.Errorf("%w: %q is not a data record", ErrBadRecord, r.Kind)
	}
	if len(r.Fields) < 3 {
		return Data{}, fmt.Errorf("%w: data record needs three fields", ErrBadRecord)
	}
	kind := strings.TrimSpace(r.Fields[0])
	if kind != "er" {
		return Data{}, fmt.Errorf("%w: unknown data type %q", ErrBadRecord, kind)
	}
	value, err := strconv.Atoi(strings.TrimSpace(r.Fields[2]))
	if err != nil {
		return Data{}, fmt.Errorf("%w: data value %q", ErrBadRecord, r.Fields[2])
	}
	return Data{Kind: kind, PlayerID: strings.TrimSpace(r.Fields[1]), Value: value}, nil
}

// Adjustment is a badj, padj, or ladj record: a player batting or
// pitching with their non-listed hand, or a lineup adjustment.
type Adjustment struct {
	PlayerID string
	Hand     string
}

// Adjustment interprets the record as a hand or lineup adjustment.
func (r Record) Adjustment() (Adjustment, error) {
	switch r.Kind {
	case KindBatAdj, KindPitAdj, KindLineAdj:
	default:
		return Adjustment{}, fmt.Errorf("%w: %q is not an adjustment record", ErrBadRecord, r.Kind)
	}
	if len(r.Fields) < 2 {
		return Adjustment{}, fmt.Errorf("%w: adjustment record needs two fields", ErrBadRecord)
	}
	return Adjustment{
		PlayerID: strings.TrimSpace(r.Fields[0]),
		Hand:     strings.TrimSpace(r.Fields[1]),
	}, nil
}

// Comment returns the comment text of a com record.
func (r Record) Comment() (string, error) {
	if r.Kind != KindComment {
		return "", fmt.Errorf("%w: %q is not a comment record", ErrBadRecord, r.Kind)
	}
	return strings.Trim(strings.Join(r.Fields, ","), `"`), nil
}

func parseHalf(field string) (retro.Half, error) {
	switch strings.TrimSpace(field) {
	case "0":
		return retro.HalfTop, nil
	case "1":
		return retro.HalfBottom, nil
	}
	return 0, fmt.Errorf("%w: half indicator %q", ErrBadRecord, field)
}

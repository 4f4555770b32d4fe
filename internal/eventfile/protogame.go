package eventfile

import "strings"

// ProtoGame holds the raw records for a single game, in file order,
// with a few routing fields lifted out of the info records so callers
// can filter games without assembling them.
type ProtoGame struct {
	ID        string
	HomeTeam  string
	VisitTeam string
	Park      string
	Date      string
	UsesDH    bool
	Records   []Record
}

func newProtoGame(id string) *ProtoGame {
	return &ProtoGame{ID: id}
}

func (pg *ProtoGame) append(rec Record) {
	pg.Records = append(pg.Records, rec)
	if rec.Kind != KindInfo || len(rec.Fields) < 2 {
		return
	}
	value := strings.TrimSpace(rec.Fields[1])
	switch strings.ToLower(strings.TrimSpace(rec.Fields[0])) {
	case "visteam":
		pg.VisitTeam = value
	case "hometeam":
		pg.HomeTeam = value
	case "site":
		pg.Park = value
	case "date":
		pg.Date = value
	case "usedh":
		pg.UsesDH = strings.EqualFold(value, "true")
	}
}

// HasTeam reports whether teamID played in this game on either side.
func (pg *ProtoGame) HasTeam(teamID string) bool {
	return strings.EqualFold(pg.HomeTeam, teamID) || strings.EqualFold(pg.VisitTeam, teamID)
}

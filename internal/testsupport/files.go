package testsupport

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scorebook/internal/eventfile"
	"scorebook/internal/game"
)

// WriteSeasonFile writes body under the config's event directory and
// returns the full path.
func WriteSeasonFile(t testing.TB, dir, name, body string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// MustAssemble parses event file source text and assembles its first
// game.
func MustAssemble(t testing.TB, src string) *game.Game {
	t.Helper()

	file, err := eventfile.Parse(strings.NewReader(src), "fixture")
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if len(file.ProtoGames) == 0 {
		t.Fatal("fixture has no games")
	}
	g, err := game.Assemble(file.ProtoGames[0], slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("assemble fixture: %v", err)
	}
	return g
}

// SampleGame is a short, fully parseable single game usable by any
// test that needs a real assembled game or an ingestable file.
const SampleGame = `id,SDN199605170
version,2
info,visteam,MON
info,hometeam,SDN
info,site,SAN01
info,date,1996/05/17
info,usedh,false
info,attendance,25458
start,v1,"Visitor One",0,1,8
start,h1,"Home One",1,1,8
play,1,0,v1,22,CBBSS,K
play,1,0,v2,00,X,S8/G
play,1,0,v3,01,CX,64(1)3/GDP
play,1,1,h1,32,BBCBFB,W
play,1,1,h2,21,BBCX,HR/F78.1-H
play,1,1,h3,22,CSBBS,K
play,1,1,h4,00,X,8/F
play,1,1,h5,00,X,3/G
play,2,0,v4,00,X,T9/F
play,2,0,v5,00,X,S8/G.3-H
play,2,0,v6,00,X,K
play,2,0,v7,00,X,43/G
play,2,0,v8,00,X,8/F
play,2,1,h6,00,X,D7/L
`

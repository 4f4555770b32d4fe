package eventfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// File is one parsed event file: its games in order plus any comments
// that precede the first game.
type File struct {
	Name          string
	StartComments []Record
	ProtoGames    []*ProtoGame
}

// ReadFile parses the event file at path. Retrosheet distributes event
// files in Latin-1, so the bytes are decoded before line splitting.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()
	return Parse(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()), path)
}

// Parse reads event file records from r. The name is used only for
// error reporting.
func Parse(r io.Reader, name string) (*File, error) {
	file := &File{Name: name}
	var current *ProtoGame

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		fields, err := splitRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		rec := Record{Kind: strings.ToLower(fields[0]), Fields: fields[1:]}

		if rec.Kind == KindID {
			if len(rec.Fields) == 0 {
				return nil, fmt.Errorf("%s:%d: %w: id record without a game id", name, lineNo, ErrBadRecord)
			}
			current = newProtoGame(rec.Fields[0])
			file.ProtoGames = append(file.ProtoGames, current)
			continue
		}
		if current == nil {
			if rec.Kind == KindComment {
				file.StartComments = append(file.StartComments, rec)
				continue
			}
			return nil, fmt.Errorf("%s:%d: %w: %q record before first game id", name, lineNo, ErrBadRecord, rec.Kind)
		}
		current.append(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event file %s: %w", name, err)
	}
	return file, nil
}

// splitRecord splits a record line on commas. Quoted fields are rare
// (player names and free-text comments) so the csv package is only
// consulted when a quote is present.
func splitRecord(line string) ([]string, error) {
	if !strings.Contains(line, `"`) {
		return strings.Split(line, ","), nil
	}
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	fields, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	return fields, nil
}

// ByTeam returns the games in which teamID appears on either side.
func (f *File) ByTeam(teamID string) []*ProtoGame {
	var out []*ProtoGame
	for _, pg := range f.ProtoGames {
		if pg.HasTeam(teamID) {
			out = append(out, pg)
		}
	}
	return out
}

// ByPark returns the games played at the given Retrosheet park code.
func (f *File) ByPark(parkID string) []*ProtoGame {
	var out []*ProtoGame
	for _, pg := range f.ProtoGames {
		if strings.EqualFold(pg.Park, parkID) {
			out = append(out, pg)
		}
	}
	return out
}

// ByUsesDH returns the games matching the designated hitter flag.
func (f *File) ByUsesDH(usesDH bool) []*ProtoGame {
	var out []*ProtoGame
	for _, pg := range f.ProtoGames {
		if pg.UsesDH == usesDH {
			out = append(out, pg)
		}
	}
	return out
}

// ByDate returns the games played on the given date (YYYY/MM/DD).
func (f *File) ByDate(date string) []*ProtoGame {
	var out []*ProtoGame
	for _, pg := range f.ProtoGames {
		if pg.Date == date {
			out = append(out, pg)
		}
	}
	return out
}

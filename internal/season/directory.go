package season

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"scorebook/internal/eventfile"
)

// ErrGameNotFound reports a game id that no event file in the
// directory contains.
var ErrGameNotFound = errors.New("game not found")

// Directory is one year's worth of Retrosheet files under a single
// filesystem directory.
type Directory struct {
	Path string
	Year int

	EventFiles  []string
	RosterFiles []string
	TeamFile    string
}

// OpenDirectory scans path for the files belonging to the given year.
// Files for other years in the same directory are ignored.
func OpenDirectory(path string, year int) (*Directory, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("scan season directory: %w", err)
	}
	yearStr := strconv.Itoa(year)
	dir := &Directory{Path: path, Year: year}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, yearStr) {
			continue
		}
		full := filepath.Join(path, name)
		upper := strings.ToUpper(name)
		switch {
		case strings.HasSuffix(upper, ".EVA"), strings.HasSuffix(upper, ".EVN"):
			dir.EventFiles = append(dir.EventFiles, full)
		case strings.HasSuffix(upper, ".ROS"):
			dir.RosterFiles = append(dir.RosterFiles, full)
		case strings.HasPrefix(upper, "TEAM"):
			dir.TeamFile = full
		}
	}
	sort.Strings(dir.EventFiles)
	sort.Strings(dir.RosterFiles)
	if len(dir.EventFiles) == 0 {
		return nil, fmt.Errorf("no event files for %d under %s", year, path)
	}
	return dir, nil
}

// Files parses every event file in the directory.
func (d *Directory) Files() ([]*eventfile.File, error) {
	files := make([]*eventfile.File, 0, len(d.EventFiles))
	for _, path := range d.EventFiles {
		file, err := eventfile.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// ProtoGames parses the directory's event files and returns the games
// passing the filter, in file order.
func (d *Directory) ProtoGames(filter Filter) ([]*eventfile.ProtoGame, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}
	var out []*eventfile.ProtoGame
	for _, file := range files {
		for _, pg := range file.ProtoGames {
			if filter.Matches(pg) {
				out = append(out, pg)
			}
		}
	}
	return out, nil
}

// GameByID locates a single game by its Retrosheet id. The id embeds
// the home team and date (for example SDN199605170), which names the
// event file to search.
func (d *Directory) GameByID(id string) (*eventfile.ProtoGame, error) {
	if len(id) < 11 {
		return nil, fmt.Errorf("%w: id %q too short", ErrGameNotFound, id)
	}
	prefix := id[3:7] + strings.ToUpper(id[:3]) + ".EV"
	for _, path := range d.EventFiles {
		if !strings.HasPrefix(strings.ToUpper(filepath.Base(path)), prefix) {
			continue
		}
		file, err := eventfile.ReadFile(path)
		if err != nil {
			return nil, err
		}
		for _, pg := range file.ProtoGames {
			if strings.EqualFold(pg.ID, id) {
				return pg, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrGameNotFound, id, d.Path)
}

// Filter selects games out of a season. Zero-valued fields match
// everything.
type Filter struct {
	Team   string
	Park   string
	Date   string
	UsesDH *bool
}

// Matches reports whether the game passes every set field.
func (f Filter) Matches(pg *eventfile.ProtoGame) bool {
	if f.Team != "" && !pg.HasTeam(f.Team) {
		return false
	}
	if f.Park != "" && !strings.EqualFold(pg.Park, f.Park) {
		return false
	}
	if f.Date != "" && pg.Date != f.Date {
		return false
	}
	if f.UsesDH != nil && pg.UsesDH != *f.UsesDH {
		return false
	}
	return true
}

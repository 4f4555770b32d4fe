package season

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Team is one line of a season's TEAM file.
type Team struct {
	ID     string
	League string
	City   string
	Name   string
}

// RosterPlayer is one line of a team's .ROS roster file.
type RosterPlayer struct {
	ID     string
	Last   string
	First  string
	Bats   string
	Throws string
	TeamID string
}

// FullName returns the player's name in reading order.
func (p RosterPlayer) FullName() string {
	return strings.TrimSpace(p.First + " " + p.Last)
}

// Teams parses the directory's TEAM file.
func (d *Directory) Teams() ([]Team, error) {
	if d.TeamFile == "" {
		return nil, fmt.Errorf("no TEAM file for %d under %s", d.Year, d.Path)
	}
	var teams []Team
	err := readLatin1Lines(d.TeamFile, func(fields []string) {
		if len(fields) < 4 {
			return
		}
		teams = append(teams, Team{
			ID:     fields[0],
			League: fields[1],
			City:   fields[2],
			Name:   fields[3],
		})
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// Roster parses the .ROS file for a team code, keyed by player id.
func (d *Directory) Roster(teamID string) (map[string]RosterPlayer, error) {
	want := strings.ToUpper(teamID)
	for _, path := range d.RosterFiles {
		base := strings.ToUpper(filepath.Base(path))
		if !strings.HasPrefix(base, want) {
			continue
		}
		roster := make(map[string]RosterPlayer)
		err := readLatin1Lines(path, func(fields []string) {
			if len(fields) < 6 {
				return
			}
			p := RosterPlayer{
				ID:     fields[0],
				Last:   fields[1],
				First:  fields[2],
				Bats:   fields[3],
				Throws: fields[4],
				TeamID: fields[5],
			}
			roster[p.ID] = p
		})
		if err != nil {
			return nil, err
		}
		return roster, nil
	}
	return nil, fmt.Errorf("no roster file for %s in %d", teamID, d.Year)
}

func readLatin1Lines(path string, fn func(fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(strings.Split(line, ","))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

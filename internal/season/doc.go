// Package season locates Retrosheet files on disk. A season directory
// holds one year's event files (.EVA for American League parks, .EVN
// for National League parks), team rosters (.ROS), and a TEAM file
// naming the year's franchises. A Collection spans a range of years
// and applies game filters across all of them.
package season

// Package stats derives leaderboard metrics from the aggregate.
//
// Every function here is pure: given the same record list and
// aggregate it produces the same result, and missing data degrades to
// explicit "unavailable" values instead of errors.
package stats

import (
	"math"

	"github.com/pizzapunten/pizzapunten/internal/domain/aggregate"
	"github.com/pizzapunten/pizzapunten/internal/domain/record"
	"github.com/pizzapunten/pizzapunten/internal/domain/scoring"
)

// trendWindow is the number of recent distinct session dates compared
// against the up-to-trendWindow dates preceding them.
const trendWindow = 3

// Ranked names the current points leader.
type Ranked struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// Trend names the player with the largest net point change between the
// recent session window and the prior one.
type Trend struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// WinRate names the player with the best wins-per-presence ratio.
type WinRate struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// PlayerStats is the per-player detail block.
type PlayerStats struct {
	Wins          int `json:"wins"`
	Attendance    int `json:"attendance"`
	WinRate       int `json:"win_rate"`
	Injured       int `json:"injured"`
	Absent        int `json:"absent"`
	TotalSessions int `json:"total_sessions"`
}

// Stats bundles all derived metrics of one snapshot. Nil pointers and
// empty strings mean "unavailable", never an error.
type Stats struct {
	Leader             *Ranked                `json:"leader"`
	TrendLeader        *Trend                 `json:"trend_leader"`
	BestWinRate        *WinRate               `json:"best_win_rate"`
	MostConsistent     string                 `json:"most_consistent"`
	RoomForImprovement string                 `json:"room_for_improvement"`
	TotalSessions      int                    `json:"total_sessions"`
	PlayerStats        map[string]PlayerStats `json:"player_stats"`
}

// Compute derives all metrics from the canonical record list and its
// aggregate. Ties are broken by first appearance in the record list.
func Compute(records []record.Record, agg *aggregate.Aggregate) *Stats {
	presence := make(map[string]int)
	wins := make(map[string]int)
	injuries := make(map[string]int)
	for _, rec := range records {
		if scoring.Truthy(rec.Present) {
			presence[rec.Player]++
			if scoring.Truthy(rec.Winner) {
				wins[rec.Player]++
			}
		}
		if scoring.Injured(rec.Injured) {
			injuries[rec.Player]++
		}
	}

	s := &Stats{
		TotalSessions: agg.TotalSessions(),
		PlayerStats:   make(map[string]PlayerStats, len(agg.Players)),
	}

	s.Leader = leader(agg)
	s.TrendLeader = trendLeader(agg)
	s.BestWinRate = bestWinRate(agg.Players, presence, wins)
	s.MostConsistent, s.RoomForImprovement = attendanceExtremes(agg.Players, presence)

	for _, player := range agg.Players {
		att := presence[player]
		rate := 0
		if att > 0 {
			rate = roundPercent(float64(wins[player]) / float64(att))
		}
		s.PlayerStats[player] = PlayerStats{
			Wins:          wins[player],
			Attendance:    att,
			WinRate:       rate,
			Injured:       injuries[player],
			Absent:        s.TotalSessions - att,
			TotalSessions: s.TotalSessions,
		}
	}

	return s
}

// leader returns the player with the highest cumulative total, or nil
// for an empty aggregate.
func leader(agg *aggregate.Aggregate) *Ranked {
	var best *Ranked
	for _, player := range agg.Players {
		total := agg.TotalsByPlayer[player]
		if best == nil || total > best.Points {
			best = &Ranked{Name: player, Points: total}
		}
	}
	return best
}

// trendLeader compares each player's points in the last trendWindow
// distinct dates against the up-to-trendWindow dates before them.
// It requires at least two distinct session dates, and a maximum delta
// of exactly zero yields no leader: a plateau is not form.
func trendLeader(agg *aggregate.Aggregate) *Trend {
	dates := agg.Dates
	if len(dates) < 2 {
		return nil
	}

	recentStart := len(dates) - trendWindow
	if recentStart < 0 {
		recentStart = 0
	}
	priorStart := len(dates) - 2*trendWindow
	if priorStart < 0 {
		priorStart = 0
	}

	recent := windowSums(agg, dates[recentStart:])
	prior := windowSums(agg, dates[priorStart:recentStart])

	var best *Trend
	for _, player := range agg.Players {
		if _, ok := recent[player]; !ok {
			continue
		}
		delta := recent[player] - prior[player]
		if best == nil || delta > best.Delta {
			best = &Trend{Name: player, Delta: delta}
		}
	}
	if best == nil || best.Delta == 0 {
		return nil
	}
	return best
}

// windowSums sums each player's points across the given session keys.
func windowSums(agg *aggregate.Aggregate, dates []string) map[string]float64 {
	sums := make(map[string]float64)
	for _, d := range dates {
		for player, pts := range agg.SessionsByDate[d] {
			sums[player] += pts
		}
	}
	return sums
}

// bestWinRate ranks players by wins per presence. Players without a
// single presence record are excluded outright: their ratio is
// undefined, not zero.
func bestWinRate(players []string, presence, wins map[string]int) *WinRate {
	var (
		best     *WinRate
		bestRate float64
	)
	for _, player := range players {
		att := presence[player]
		if att == 0 {
			continue
		}
		rate := float64(wins[player]) / float64(att)
		if best == nil || rate > bestRate {
			best = &WinRate{Name: player, Percentage: roundPercent(rate)}
			bestRate = rate
		}
	}
	return best
}

// attendanceExtremes returns the most and least consistent attendees
// among players with at least one presence record.
func attendanceExtremes(players []string, presence map[string]int) (most, least string) {
	mostCount, leastCount := -1, -1
	for _, player := range players {
		att := presence[player]
		if att == 0 {
			continue
		}
		if att > mostCount {
			most, mostCount = player, att
		}
		if leastCount == -1 || att < leastCount {
			least, leastCount = player, att
		}
	}
	return most, least
}

func roundPercent(rate float64) int {
	return int(math.Round(rate * 100))
}

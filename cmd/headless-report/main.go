package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/pico-arcade/internal/arcade"
)

type botSkill struct {
	lag      time.Duration
	accuracy float64
	jitter   int
	wobble   float64
}

type runStats struct {
	runIndex int
	seed     int64
	game     string
	mode     byte

	result arcade.Result
	err    error

	firstHitAt  time.Duration
	firstMissAt time.Duration
	collisionAt time.Duration
	dropBursts  int
	events      int
}

func main() {
	var runs int
	var rounds int
	var seedBase int64
	var seedStep int64
	var games string
	var lagMs int
	var skill botSkill
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of sessions per game")
	flag.IntVar(&rounds, "rounds", 0, "rounds per session (0 keeps the game default)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&games, "games", "rhythm,shooter,gauge", "comma-separated games to play")
	flag.IntVar(&lagMs, "lag", 40, "rhythm bot reaction lag in ms")
	flag.Float64Var(&skill.accuracy, "accuracy", 0.9, "rhythm bot chance of pressing the right arrow")
	flag.IntVar(&skill.jitter, "jitter", 2, "shooter bot aim error in pixels")
	flag.Float64Var(&skill.wobble, "wobble", 4, "gauge bot hand wobble in degrees")
	flag.BoolVar(&verbose, "v", false, "print the event log of every run")
	flag.Parse()
	skill.lag = time.Duration(lagMs) * time.Millisecond

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if rounds < 0 {
		fmt.Println("error: -rounds must be >= 0")
		return
	}
	var sessions []arcade.Session
	for _, name := range strings.Split(games, ",") {
		s, err := arcade.ParseSession(name, "", rounds)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		sessions = append(sessions, s)
	}

	fmt.Printf("=== Headless Arcade Report ===\n")
	fmt.Printf("games=%s runs=%d rounds=%d seed_base=%d seed_step=%d lag=%s accuracy=%.2f jitter=%d wobble=%.1f\n\n",
		games, runs, rounds, seedBase, seedStep, skill.lag, skill.accuracy, skill.jitter, skill.wobble)

	rep := arcade.NewReport()
	for _, s := range sessions {
		for i := 0; i < runs; i++ {
			seed := seedBase + int64(i)*seedStep
			s.Mode = modeFor(s.Game, i)
			rs := runSession(i+1, seed, s, skill, verbose)
			printRun(rs)
			if rs.err == nil {
				rep.Add(rs.result)
			}
		}
	}
	fmt.Println()
	fmt.Print(rep.Format())
}

// modeFor rotates through a game's modes so every track and shape gets
// played.
func modeFor(game string, run int) byte {
	switch game {
	case arcade.GameRhythm:
		return "ABCD"[run%4]
	case arcade.GameShooter:
		return "EF"[run%2]
	}
	return 0
}

func runSession(runIndex int, seed int64, s arcade.Session, skill botSkill, verbose bool) runStats {
	rs := runStats{runIndex: runIndex, seed: seed, game: s.Game, mode: s.Mode}
	rig, err := arcade.NewRig(arcade.WithSeed(seed))
	if err != nil {
		rs.err = err
		return rs
	}
	botSeed := seed*31 + 7

	switch s.Game {
	case arcade.GameRhythm:
		cfg := arcade.DefaultRhythmConfig()
		if s.Rounds > 0 {
			cfg.Rounds = s.Rounds
		}
		g := arcade.NewRhythm(rig.Board, arcade.ParseRhythmMode(s.Mode), cfg)
		rig.AddBot(arcade.NewRhythmBot(rig, g, skill.lag, skill.accuracy, botSeed))
		rs.result, rs.err = g.Run()
	case arcade.GameShooter:
		g := arcade.NewShooter(rig.Board, arcade.ParseShooterMode(s.Mode), arcade.DefaultShooterConfig())
		rig.AddBot(arcade.NewShooterBot(rig, g, skill.jitter, botSeed))
		rs.result, rs.err = g.Run()
	case arcade.GameGauge:
		cfg := arcade.DefaultGaugeConfig()
		if s.Rounds > 0 {
			cfg.Rounds = s.Rounds
		}
		g := arcade.NewGauge(rig.Board, cfg)
		rig.AddBot(arcade.NewGaugeBot(rig, g, skill.wobble, botSeed))
		rs.result, rs.err = g.Run()
	}

	entries := rig.Log().Entries()
	rs.firstHitAt = firstAt(entries, "judge", "perfect", "great", "good")
	if rs.firstHitAt < 0 {
		rs.firstHitAt = firstAt(entries, "shot", "hit")
	}
	rs.firstMissAt = firstAt(entries, "judge", "miss")
	if rs.firstMissAt < 0 {
		rs.firstMissAt = firstAt(entries, "shot", "miss")
	}
	rs.collisionAt = firstAt(entries, "judge", "collision")
	rs.dropBursts = rig.Log().Count("display", "frame_dropped")
	rs.events = rig.Log().Total()

	if verbose {
		fmt.Print(rig.Log().Format())
	}
	return rs
}

// firstAt returns the time of the first entry in category whose key is any of
// keys, or -1.
func firstAt(entries []arcade.Event, category string, keys ...string) time.Duration {
	for _, e := range entries {
		if e.Category != category {
			continue
		}
		for _, k := range keys {
			if e.Key == k {
				return e.At
			}
		}
	}
	return -1
}

func printRun(rs runStats) {
	mode := "-"
	if rs.mode != 0 {
		mode = string(rs.mode)
	}
	fmt.Printf("--- %s run %d (seed=%d mode=%s) ---\n", rs.game, rs.runIndex, rs.seed, mode)
	if rs.err != nil {
		fmt.Printf("error: %v\n", rs.err)
		return
	}
	fmt.Printf("result: %s\n", rs.result)
	fmt.Printf("markers: first_hit=%s first_miss=%s collision=%s drop_bursts=%d events=%d\n",
		marker(rs.firstHitAt), marker(rs.firstMissAt), marker(rs.collisionAt), rs.dropBursts, rs.events)
	if collapsed, reason := detectCollapse(rs); collapsed {
		fmt.Printf("collapse: %s\n", reason)
	}
}

func marker(at time.Duration) string {
	if at < 0 {
		return "never"
	}
	return fmt.Sprintf("%.2fs", at.Seconds())
}

// detectCollapse flags runs the bot lost while failing more decisions than
// it won, the sign of tuning that is too hard rather than bad luck.
func detectCollapse(rs runStats) (bool, string) {
	res := rs.result
	if res.Outcome == arcade.OutcomeWon {
		return false, ""
	}
	failed := res.Misses + res.Expired
	if failed == 0 || failed <= res.Hits {
		return false, ""
	}
	reasons := []string{fmt.Sprintf("failed=%d>hits=%d", failed, res.Hits)}
	if rs.collisionAt >= 0 {
		reasons = append(reasons, "overrun")
	}
	if res.Expired > 0 {
		reasons = append(reasons, fmt.Sprintf("expired=%d", res.Expired))
	}
	if rs.dropBursts > 0 {
		reasons = append(reasons, "display_stalls")
	}
	return true, strings.Join(reasons, ",")
}

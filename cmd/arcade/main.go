package main

import (
	"flag"
	"log"
	"time"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/sim"
	"github.com/Garsondee/pico-arcade/internal/sim/window"
)

func main() {
	var game, mode string
	var seed int64
	var scale, rounds int
	var quiet, mute bool

	flag.StringVar(&game, "game", arcade.GameRhythm, "game to play: rhythm, shooter or gauge")
	flag.StringVar(&mode, "mode", "", "mode letter: A-D for rhythm, E-F for shooter")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the wall clock)")
	flag.IntVar(&scale, "scale", 6, "screen pixels per panel pixel")
	flag.IntVar(&rounds, "rounds", 0, "rounds to play (0 keeps the game default)")
	flag.BoolVar(&quiet, "quiet", false, "do not echo round events to the log")
	flag.BoolVar(&mute, "mute", false, "disable the buzzer")
	flag.Parse()

	session, err := arcade.ParseSession(game, mode, rounds)
	if err != nil {
		log.Fatal(err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var echo *log.Logger
	if !quiet {
		echo = log.Default()
	}
	host, err := sim.NewHost(arcade.DefaultLayout(), clock.NewReal(), seed, echo)
	if err != nil {
		log.Fatal(err)
	}
	if !mute {
		host.Board.Buzzer = window.NewBuzzer()
	}
	host.Start(session)

	if err := window.New(host, scale).Run("Pico Arcade"); err != nil {
		log.Fatal(err)
	}
	if host.Finished() {
		res, err := host.Result()
		if err != nil {
			log.Printf("session error: %v", err)
		}
		log.Printf("result: %s", res)
	}
}

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/sim"
)

func main() {
	var game, mode, logPath string
	var seed int64
	var rounds int
	var mute bool

	flag.StringVar(&game, "game", arcade.GameRhythm, "game to play: rhythm, shooter or gauge")
	flag.StringVar(&mode, "mode", "", "mode letter: A-D for rhythm, E-F for shooter")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the wall clock)")
	flag.IntVar(&rounds, "rounds", 0, "rounds to play (0 keeps the game default)")
	flag.StringVar(&logPath, "log", "", "append round events to this file")
	flag.BoolVar(&mute, "mute", false, "disable the buzzer")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("arcade-term: stdout is not a terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < sim.TermCols || h < sim.TermRows) {
		log.Fatalf("arcade-term: need a %dx%d terminal, have %dx%d", sim.TermCols, sim.TermRows, w, h)
	}

	session, err := arcade.ParseSession(game, mode, rounds)
	if err != nil {
		log.Fatal(err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The screen owns stdout, so events only go to a file.
	var echo *log.Logger
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		echo = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	}

	host, err := sim.NewHost(arcade.DefaultLayout(), clock.NewReal(), seed, echo)
	if err != nil {
		log.Fatal(err)
	}
	if !mute {
		beeper, err := sim.NewBeeper()
		if err != nil {
			log.Printf("audio unavailable: %v", err)
		} else {
			defer beeper.Close()
			host.Board.Buzzer = beeper
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.HideCursor()

	host.Start(session)
	sim.NewTerminal(host, screen).Run()
	screen.Fini()

	if host.Finished() {
		res, err := host.Result()
		if err != nil {
			log.Printf("session error: %v", err)
		}
		log.Printf("result: %s", res)
	}
}

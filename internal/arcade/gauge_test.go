package arcade

import (
	"math"
	"testing"
	"time"
)

func TestDegrees_Mapping(t *testing.T) {
	if got := Degrees(0); got != 180 {
		t.Errorf("Degrees(0) = %v, want 180", got)
	}
	if got := Degrees(4095); got != 0 {
		t.Errorf("Degrees(4095) = %v, want 0", got)
	}
	if got := Degrees(60000); got != 0 {
		t.Errorf("out-of-range reading should clamp, got %v", got)
	}
	for _, angle := range []float64{0, 17.5, 90, 163, 180} {
		if got := Degrees(RawForDegrees(angle)); math.Abs(got-angle) > 0.05 {
			t.Errorf("round trip of %v gave %v", angle, got)
		}
	}
}

func TestGauge_ZonesUniqueAndInRange(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := newRig(t, WithSeed(seed))
		g := NewGauge(r.Board, DefaultGaugeConfig())
		zones := g.PickZones()
		if len(zones) != 5 {
			t.Fatalf("seed %d: expected 5 zones, got %d", seed, len(zones))
		}
		seen := map[float64]bool{}
		for _, z := range zones {
			if z.From < 0 || z.To > 180 || z.To-z.From != 20 {
				t.Fatalf("seed %d: bad zone %+v", seed, z)
			}
			if seen[z.From] {
				t.Fatalf("seed %d: repeated zone start %v", seed, z.From)
			}
			seen[z.From] = true
		}
	}
}

func TestGauge_HoldInZoneSucceeds(t *testing.T) {
	r := newRig(t)
	leds := &LEDLatch{}
	r.Board.LEDs = leds
	g := NewGauge(r.Board, DefaultGaugeConfig())
	z := Zone{From: 40, To: 60}
	r.Pins.SetSample(r.Layout.Pot, RawForDegrees(50))

	start := r.Clock.Now()
	if !g.Play(z) {
		t.Fatal("needle held in zone should succeed")
	}
	if took := r.Clock.Now() - start; took < 3*time.Second || took > 3100*time.Millisecond {
		t.Fatalf("hold should take about 3s, took %v", took)
	}
	if !leds.Green || leds.Red {
		t.Fatalf("in-zone LEDs should be green, got %+v", leds)
	}
}

func TestGauge_EntryTimeout(t *testing.T) {
	r := newRig(t)
	g := NewGauge(r.Board, DefaultGaugeConfig())
	r.Pins.SetSample(r.Layout.Pot, RawForDegrees(150))

	start := r.Clock.Now()
	if g.Play(Zone{From: 40, To: 60}) {
		t.Fatal("needle never in zone should fail")
	}
	if took := r.Clock.Now() - start; took < 3*time.Second || took > 3100*time.Millisecond {
		t.Fatalf("entry should time out after about 3s, took %v", took)
	}
	if _, ok := r.Log().LastOf("gauge", "entry_timeout"); !ok {
		t.Fatal("timeout should be logged")
	}
}

func TestGauge_LeavingZoneLoses(t *testing.T) {
	r := newRig(t, WithAnalog(2, 1500*time.Millisecond, RawForDegrees(120)))
	g := NewGauge(r.Board, DefaultGaugeConfig())
	r.Pins.SetSample(r.Layout.Pot, RawForDegrees(50))

	if g.Play(Zone{From: 40, To: 60}) {
		t.Fatal("leaving the zone during the hold should fail")
	}
	if _, ok := r.Log().LastOf("gauge", "left_zone"); !ok {
		t.Fatal("leaving should be logged")
	}
	if r.Clock.Now() > 1600*time.Millisecond {
		t.Fatalf("loss should be detected promptly, now %v", r.Clock.Now())
	}
}

func TestGauge_BotSessionWins(t *testing.T) {
	r := newRig(t, WithSeed(9))
	leds := &LEDLatch{}
	tones := &ToneLog{}
	r.Board.LEDs = leds
	r.Board.Buzzer = tones
	g := NewGauge(r.Board, DefaultGaugeConfig())
	r.AddBot(NewGaugeBot(r, g, 0, 5))

	res, err := g.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Outcome != OutcomeWon || res.Hits != 5 {
		t.Fatalf("steady bot should clear every zone: %s", res)
	}
	if !leds.Green || leds.Red {
		t.Fatalf("win should leave the LEDs green, got %+v", leds)
	}
	if len(tones.Tones) != 5 {
		t.Fatalf("expected one chime per cleared zone, got %v", tones.Tones)
	}
}

func TestGauge_WildBotLoses(t *testing.T) {
	r := newRig(t, WithSeed(9))
	g := NewGauge(r.Board, DefaultGaugeConfig())
	r.AddBot(NewGaugeBot(r, g, 90, 5))

	res, err := g.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Outcome != OutcomeLost {
		t.Fatalf("a bot wobbling 90 degrees should lose: %s", res)
	}
	if res.Misses != 1 {
		t.Fatalf("a loss ends the session after one failed zone, got %d misses", res.Misses)
	}
}

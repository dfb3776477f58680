package typewriter

import (
	"strings"
	"testing"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
)

func TestResolve_SlowdownPrecedence(t *testing.T) {
	config := Config{
		BaseDelay: 90 * time.Millisecond,
		Jitter:    60 * time.Millisecond,
		Slowdown: []Rule{
			{Remaining: 1, Base: 400 * time.Millisecond, Jitter: 200 * time.Millisecond},
			{Remaining: 2, Base: 250 * time.Millisecond, Jitter: 100 * time.Millisecond},
		},
	}
	total := 5
	for index := 0; index < total; index++ {
		base, jitter := config.Resolve(total - index)
		switch index {
		case 4:
			if base != 400*time.Millisecond || jitter != 200*time.Millisecond {
				t.Errorf("Index 4: expected (400ms, 200ms), got (%v, %v)", base, jitter)
			}
		case 3:
			if base != 250*time.Millisecond || jitter != 100*time.Millisecond {
				t.Errorf("Index 3: expected (250ms, 100ms), got (%v, %v)", base, jitter)
			}
		default:
			if base != 90*time.Millisecond || jitter != 60*time.Millisecond {
				t.Errorf("Index %d: expected defaults, got (%v, %v)", index, base, jitter)
			}
		}
	}
}

func TestResolve_FirstMatchWinsInGivenOrder(t *testing.T) {
	config := Config{
		BaseDelay: time.Millisecond,
		Slowdown: []Rule{
			{Remaining: 3, Base: 30 * time.Millisecond},
			{Remaining: 1, Base: 10 * time.Millisecond},
		},
	}
	if base, _ := config.Resolve(1); base != 30*time.Millisecond {
		t.Errorf("Expected the first listed rule to win, got %v", base)
	}
}

func TestDelay_JitterIsAdditive(t *testing.T) {
	config := Config{BaseDelay: 100 * time.Millisecond, Jitter: 50 * time.Millisecond}
	if got := config.Delay(10, rng.NewSequence(0)); got != 100*time.Millisecond {
		t.Errorf("Expected base delay with zero draw, got %v", got)
	}
	if got := config.Delay(10, rng.NewSequence(0.5)); got != 125*time.Millisecond {
		t.Errorf("Expected 125ms with half jitter, got %v", got)
	}
	src := rng.NewMulberry32(77)
	for i := 0; i < 200; i++ {
		got := config.Delay(10, src)
		if got < 100*time.Millisecond || got >= 150*time.Millisecond {
			t.Fatalf("Expected delay in [100ms, 150ms), got %v", got)
		}
	}
}

func TestStart_StepMonotonicity(t *testing.T) {
	loop := sched.NewLoop()
	var steps []int
	completions := 0
	stepsAtCompletion := -1
	Start(loop, 6, DefaultConfig(), func(index int) {
		steps = append(steps, index)
	}, func() {
		completions++
		stepsAtCompletion = len(steps)
	}, rng.NewMulberry32(4))

	for i := 0; i < 500; i++ {
		loop.Advance(10 * time.Millisecond)
	}
	if len(steps) != 6 {
		t.Fatalf("Expected 6 steps, got %v", steps)
	}
	for i, index := range steps {
		if index != i {
			t.Errorf("Expected step %d, got %d", i, index)
		}
	}
	if completions != 1 || stepsAtCompletion != 6 {
		t.Errorf("Expected one completion after all steps, got %d (after %d steps)", completions, stepsAtCompletion)
	}
}

func TestStart_ChainingScenario(t *testing.T) {
	loop := sched.NewLoop()
	config := Config{BaseDelay: 10 * time.Millisecond, Linger: 200 * time.Millisecond}
	var events []string
	handle := Start(loop, 3, config, func(index int) {
		events = append(events, "step")
	}, func() {
		events = append(events, "complete")
	}, nil)

	loop.Advance(3*10*time.Millisecond + config.Linger - time.Millisecond)
	if len(events) != 3 {
		t.Errorf("Expected 3 steps and no completion yet, got %v", events)
	}
	loop.Advance(2 * time.Millisecond)
	want := "step,step,step,complete"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if handle.Active() {
		t.Error("Expected handle finished after completion")
	}
	loop.Advance(time.Second)
	if len(events) != 4 {
		t.Errorf("Expected completion exactly once, got %v", events)
	}
}

func TestStart_StepTiming(t *testing.T) {
	loop := sched.NewLoop()
	config := Config{StartDelay: 400 * time.Millisecond, BaseDelay: 90 * time.Millisecond}
	var at []time.Duration
	Start(loop, 3, config, func(int) { at = append(at, loop.Now()) }, nil, nil)
	loop.Advance(time.Second)
	want := []time.Duration{400 * time.Millisecond, 490 * time.Millisecond, 580 * time.Millisecond}
	for i := range want {
		if i >= len(at) || at[i] != want[i] {
			t.Fatalf("Expected steps at %v, got %v", want, at)
		}
	}
}

func TestStart_CancellationFinality(t *testing.T) {
	loop := sched.NewLoop()
	var steps []int
	completed := false
	handle := Start(loop, 10, Config{BaseDelay: 10 * time.Millisecond}, func(index int) {
		steps = append(steps, index)
	}, func() { completed = true }, nil)

	loop.Advance(25 * time.Millisecond)
	taken := len(steps)
	if taken != 3 {
		t.Fatalf("Expected 3 steps at 25ms, got %d", taken)
	}
	handle.Cancel()
	for i := 0; i < 20; i++ {
		loop.Advance(10 * time.Millisecond)
	}
	if len(steps) != taken || completed {
		t.Errorf("Expected no steps or completion after cancel, got %d steps, completed=%v", len(steps), completed)
	}
	if loop.Pending() != 0 {
		t.Errorf("Expected nothing pending, got %d", loop.Pending())
	}
}

func TestStart_CancelFromStep(t *testing.T) {
	loop := sched.NewLoop()
	var handle *sched.Handle
	steps := 0
	handle = Start(loop, 5, Config{}, func(index int) {
		steps++
		if index == 1 {
			handle.Cancel()
		}
	}, nil, nil)
	loop.Advance(time.Second)
	if steps != 2 {
		t.Errorf("Expected 2 steps before cancel took effect, got %d", steps)
	}
	if loop.Pending() != 0 {
		t.Errorf("Expected nothing pending, got %d", loop.Pending())
	}
}

func TestStart_EmptySequence(t *testing.T) {
	loop := sched.NewLoop()
	called := false
	handle := Start(loop, 0, DefaultConfig(), func(int) { called = true }, func() { called = true }, nil)
	loop.Advance(10 * time.Second)
	if called || handle.Active() || loop.Pending() != 0 {
		t.Error("Expected zero steps to degrade to a no-op")
	}
}

func TestValidate(t *testing.T) {
	good := DefaultConfig()
	if err := good.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}

	shadowed := DefaultConfig()
	shadowed.Slowdown = []Rule{{Remaining: 2}, {Remaining: 1}}
	if err := shadowed.Validate(); err == nil {
		t.Error("Expected shadowed rule to be reported")
	}

	negative := DefaultConfig()
	negative.Jitter = -time.Millisecond
	if err := negative.Validate(); err == nil {
		t.Error("Expected negative jitter to be reported")
	}

	negativeRule := DefaultConfig()
	negativeRule.Slowdown[0].Base = -time.Millisecond
	if err := negativeRule.Validate(); err == nil {
		t.Error("Expected negative rule delay to be reported")
	}
}

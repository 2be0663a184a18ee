package raypick

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "move", "x": 10, "y": 20},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "wheel", "x": 5, "y": 5, "dy": -2}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "move" || runner.steps[0].X != 10 || runner.steps[0].Y != 20 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].DY != -2 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "click"}, {"action": "teleport"}]}`))
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if !strings.Contains(err.Error(), "step 1") || !strings.Contains(err.Error(), "teleport") {
		t.Errorf("error = %q, want step index and action name", err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewSampleSurface(DefaultConfig())

	data := []byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First step call: click queues press+release (2 samples).
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued samples, got %d", len(s.injectQueue))
	}
	// Runner should not be done yet: injections still pending.
	if runner.Done() {
		t.Error("runner should not be done while inject queue has samples")
	}

	// Drain injections.
	s.Feed(s.injectQueue[0])
	s.Feed(s.injectQueue[1])
	s.injectQueue = s.injectQueue[:0]

	// Now step again; it should finalize.
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewSampleSurface(DefaultConfig())

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "move", "x": 7, "y": 8}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(s)
	if runner.Done() {
		t.Error("should not be done during wait")
	}

	// Frame 2: waitCount 2→1.
	runner.step(s)
	if runner.Done() || s.Injecting() {
		t.Error("should not advance during wait countdown")
	}

	// Frame 3: waitCount 1→0.
	runner.step(s)
	if s.Injecting() {
		t.Error("move step should not run yet")
	}

	// Frame 4: execute move step.
	runner.step(s)
	if len(s.injectQueue) != 1 || s.injectQueue[0].X != 7 {
		t.Fatalf("expected move to (7,8) queued, got %+v", s.injectQueue)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := NewSampleSurface(DefaultConfig())

	data := []byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 queued samples for drag, got %d", len(s.injectQueue))
	}
}

func TestRunnerDone(t *testing.T) {
	s := NewSampleSurface(DefaultConfig())

	data := []byte(`{"steps": [{"action": "wait", "frames": 1}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after a single one-frame wait")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewSampleSurface(DefaultConfig())

	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "leave"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Step 1: click queues 2 samples.
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(s.injectQueue))
	}

	// Step again: it should NOT advance because inject queue is not drained.
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	// Drain inject queue manually.
	s.injectQueue = s.injectQueue[:0]

	// Now step; it should queue the leave.
	runner.step(s)
	if len(s.injectQueue) != 1 || s.injectQueue[0].Inside {
		t.Errorf("expected a leave sample, got %+v", s.injectQueue)
	}
	if runner.Done() {
		t.Error("runner should wait for the leave to drain")
	}
}

func TestRunnerDrivesSurface(t *testing.T) {
	scene := NewScene(100, 100, DefaultConfig())
	scene.SetCamera(NewPerspectiveCamera(60, 1, 0.1, 100))
	box := NewMesh("box", NewBox(1, 1, 1))
	scene.Add(nil, box)

	var got []string
	for _, name := range []string{"onPointerenter", "onPointerleave", "onClick", "onContextmenu", "onWheel"} {
		scene.SetProp(box, name, func(e *Event) { got = append(got, e.Type.String()) })
	}

	s := NewSampleSurface(DefaultConfig())
	scene.Connect(s)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 50, "y": 50},
		{"action": "click", "x": 50, "y": 50},
		{"action": "rightclick", "x": 50, "y": 50},
		{"action": "wheel", "x": 50, "y": 50, "dy": 1},
		{"action": "move", "x": 1, "y": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 50 && !runner.Done(); i++ {
		s.Step(tick, nil)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}

	// enter fires on the first pointermove; leave on the move off the box.
	want := []string{"pointermove", "click", "contextmenu", "wheel", "pointermove"}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

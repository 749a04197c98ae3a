package pipeline

import (
	"context"
	"errors"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, scan *SiteScan) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, scan *SiteScan) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, scan)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "one"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "one"}, &mockStep{name: "two"})

		names := p.StepNames()
		if len(names) != 2 || names[0] != "one" || names[1] != "two" {
			t.Errorf("unexpected step names %v", names)
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		for _, name := range []string{"first", "second", "third"} {
			name := name
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *SiteScan) error {
					order = append(order, name)
					return nil
				},
			})
		}

		scan := NewSiteScan("shop.example.nl", "/tmp/traffic.har")
		if err := p.Execute(context.Background(), scan); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(order) != 3 || order[0] != "first" || order[2] != "third" {
			t.Errorf("unexpected execution order %v", order)
		}
		if len(scan.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %v", scan.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		failing := &mockStep{
			name:   "failing",
			doFunc: func(_ context.Context, _ *SiteScan) error { return stepErr },
		}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		scan := NewSiteScan("shop.example.nl", "/tmp/traffic.har")
		err := p.Execute(context.Background(), scan)
		if !errors.Is(err, stepErr) {
			t.Errorf("expected step error, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected later step not to run")
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{
			name:   "failing",
			doFunc: func(_ context.Context, _ *SiteScan) error { return errors.New("boom") },
		}
		after := &mockStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddSteps(failing, after)

		scan := NewSiteScan("shop.example.nl", "/tmp/traffic.har")
		if err := p.Execute(context.Background(), scan); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if after.callCount != 1 {
			t.Error("expected later step to run")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		scan := NewSiteScan("shop.example.nl", "/tmp/traffic.har")
		err := p.Execute(ctx, scan)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run after cancellation")
		}
	})
}

// TestNewSiteScan tests scan state initialization.
func TestNewSiteScan(t *testing.T) {
	t.Parallel()

	scan := NewSiteScan("shop.example.nl", "/data/shop.example.nl/traffic.har")

	if scan.Site != "shop.example.nl" {
		t.Errorf("unexpected site %q", scan.Site)
	}
	if scan.HARPath != "/data/shop.example.nl/traffic.har" {
		t.Errorf("unexpected path %q", scan.HARPath)
	}
	if scan.Leaks == nil {
		t.Fatal("expected initialized accumulator")
	}
	if !scan.Leaks.Empty() {
		t.Error("expected empty accumulator")
	}
	if scan.Result != nil {
		t.Error("expected nil result")
	}
}

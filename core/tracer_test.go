package core

import (
	"testing"
)

func TestGetPackageName(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{
			name: "interface with pointer",
			v:    tracer,
			want: "go.opentelemetry.io/otel/internal/global",
		},
		{
			name: "struct pointer",
			v:    &EventCursor{},
			want: "github.com/peggy-bridge/orchestrator/core",
		},
		{
			name: "nil",
			v:    nil,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getPackageName(tt.v); got != tt.want {
				t.Errorf("getPackageName() = %v, want %v", got, tt.want)
			}
		})
	}
}

type wrappedRelayer struct{ inner any }

func (w wrappedRelayer) UnwrapRelayer() any { return w.inner }

func TestWithPackageUnwrapsRelayers(t *testing.T) {
	inner := &EventCursor{}
	v := wrappedRelayer{inner: wrappedRelayer{inner: inner}}
	if got := unwrapRelayer(v); got != any(inner) {
		t.Errorf("unwrapRelayer() = %T, want %T", got, inner)
	}
	if got := getPackageName(unwrapRelayer(v)); got != "github.com/peggy-bridge/orchestrator/core" {
		t.Errorf("getPackageName(unwrapRelayer()) = %v", got)
	}
	if got := unwrapRelayer(nil); got != nil {
		t.Errorf("unwrapRelayer(nil) = %v, want nil", got)
	}
}

func TestPhaseString(t *testing.T) {
	phases := []Phase{PhaseIdle, PhaseProbingHeights, PhaseRelayingValsets, PhaseRelayingBatches, PhaseRelayingEvents, PhasePacing}
	want := []string{"Idle", "ProbingHeights", "RelayingValsets", "RelayingBatches", "RelayingEvents", "Pacing"}
	for i, p := range phases {
		if p.String() != want[i] {
			t.Errorf("Phase(%d).String() = %q, want %q", p, p.String(), want[i])
		}
	}
	if Phase(42).String() != "Unknown" {
		t.Errorf("unexpected name for unknown phase")
	}
}

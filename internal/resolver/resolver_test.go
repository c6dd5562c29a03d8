package resolver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/testutil"
)

var (
	in   = testutil.In
	out  = testutil.Out
	unit = testutil.Unit
	p    = testutil.Ports
)

func hint(t *testing.T, from, to string) model.WireHint {
	t.Helper()
	h, err := model.ParseWireHint(from, to)
	require.NoError(t, err)
	return h
}

func threeUnitChain() []model.UnitSummary {
	return []model.UnitSummary{
		unit("C", p(in("in", "data")), nil),
		unit("A", nil, p(out("raw", "data"))),
		unit("B", p(in("src", "data")), p(out("clean", "data"))),
	}
}

func TestResolve_ThreeUnitChain(t *testing.T) {
	ctx, _ := testutil.Context(t)

	plan, err := New().Resolve(ctx, threeUnitChain(), nil)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"A"}, {"B"}, {"C"}}, plan.Stages)
	assert.Equal(t, []string{"A", "B", "C"}, plan.ExecutionOrder)
	want := []model.Wire{
		{SourceUnit: "A", SourcePort: "raw", TargetUnit: "B", TargetPort: "src", Channel: "A_raw"},
		{SourceUnit: "B", SourcePort: "clean", TargetUnit: "C", TargetPort: "in", Channel: "B_clean"},
	}
	if diff := cmp.Diff(want, plan.Wiring); diff != "" {
		t.Errorf("wiring mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Cycle(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := []model.UnitSummary{
		unit("A", p(in("x", "features")), p(out("y", "model"))),
		unit("B", p(in("m", "model")), p(out("f", "features"))),
	}

	plan, err := New().Resolve(ctx, units, nil)
	require.Error(t, err)
	assert.Nil(t, plan)

	var cycleErr *CircularDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"A", "B", "A"}, cycleErr.Path)
	assert.Contains(t, cycleErr.Path, "A")
	assert.Contains(t, cycleErr.Path, "B")
	assert.EqualError(t, err, "circular dependency detected: A -> B -> A")
}

func TestResolve_LongCycleIsReportedInFull(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := []model.UnitSummary{
		unit("root", nil, p(out("seed", "s"))),
		unit("a", p(in("i", "k3")), p(out("o", "k1"))),
		unit("b", p(in("i", "k1")), p(out("o", "k2"))),
		unit("c", p(in("i", "k2")), p(out("o", "k3"))),
	}

	_, err := New().Resolve(ctx, units, nil)

	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.Path)
}

func TestResolve_SelfHintIsCycle(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := []model.UnitSummary{unit("A", p(in("in", "data")), p(out("out", "data")))}

	plan, err := New().Resolve(ctx, units, nil)
	require.NoError(t, err, "inferred self-edges are ignored")
	assert.Equal(t, [][]string{{"A"}}, plan.Stages)
	assert.Empty(t, plan.Wiring)

	_, err = New().Resolve(ctx, units, []model.WireHint{hint(t, "A.out", "A.in")})
	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "A"}, cycleErr.Path)
}

func TestResolve_Idempotent(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := threeUnitChain()
	reordered := []model.UnitSummary{units[2], units[0], units[1]}

	first, err := New().Resolve(ctx, units, nil)
	require.NoError(t, err)
	second, err := New().Resolve(ctx, units, nil)
	require.NoError(t, err)
	third, err := New().Resolve(ctx, reordered, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second call differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("input order changed the plan (-first +third):\n%s", diff)
	}
}

func TestResolve_DoesNotMutateArguments(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := threeUnitChain()
	hints := []model.WireHint{hint(t, "A.raw", "C.in")}
	unitsBefore := make([]model.UnitSummary, len(units))
	for i, u := range units {
		unitsBefore[i] = u.Clone()
	}
	hintsBefore := append([]model.WireHint(nil), hints...)

	_, err := New().Resolve(ctx, units, hints)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(unitsBefore, units))
	assert.Empty(t, cmp.Diff(hintsBefore, hints))
}

func TestResolve_HintOverridesInference(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := []model.UnitSummary{
		unit("A", nil, p(out("raw", "data"))),
		unit("B", nil, p(out("raw2", "data"))),
		unit("C", p(in("in", "data")), nil),
	}

	plan, err := New().Resolve(ctx, units, nil)
	require.NoError(t, err)
	w, ok := plan.WireFor("C", "in")
	require.True(t, ok)
	assert.Equal(t, "B", w.SourceUnit, "nearest producer wins without a hint")

	plan, err = New().Resolve(ctx, units, []model.WireHint{hint(t, "A.raw", "C.in")})
	require.NoError(t, err)
	w, ok = plan.WireFor("C", "in")
	require.True(t, ok)
	assert.Equal(t, model.Wire{SourceUnit: "A", SourcePort: "raw", TargetUnit: "C", TargetPort: "in", Channel: "A_raw"}, w)
	assert.Len(t, plan.Wiring, 1)
}

func TestResolve_HintForcesDependency(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := []model.UnitSummary{
		unit("report", p(in("notes", "text")), nil),
		unit("train", nil, p(out("metrics", "json"))),
	}

	plan, err := New().Resolve(ctx, units, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"report", "train"}}, plan.Stages)

	plan, err = New().Resolve(ctx, units, []model.WireHint{hint(t, "train.metrics", "report.notes")})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"train"}, {"report"}}, plan.Stages)
	assert.Equal(t, []model.Wire{{
		SourceUnit: "train", SourcePort: "metrics", TargetUnit: "report", TargetPort: "notes", Channel: "train_metrics",
	}}, plan.Wiring)
}

func TestResolve_SchemaPreference(t *testing.T) {
	ctx, _ := testutil.Context(t)

	t.Run("compatible schema preferred over nearer producer", func(t *testing.T) {
		units := []model.UnitSummary{
			unit("a", nil, p(out("rows", "data", testutil.Col("id"), testutil.Col("name")))),
			unit("b", nil, p(out("other", "data", testutil.Col("x")))),
			unit("c", p(in("in", "data", testutil.Col("id"))), nil),
		}
		plan, err := New().Resolve(ctx, units, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, plan.Stages)
		w, ok := plan.WireFor("c", "in")
		require.True(t, ok)
		assert.Equal(t, "a", w.SourceUnit)
	})

	t.Run("nullable columns are not required", func(t *testing.T) {
		units := []model.UnitSummary{
			unit("a", nil, p(out("rows", "data", testutil.Col("id")))),
			unit("b", p(in("in", "data", testutil.Col("id"), model.Column{Name: "note", Nullable: true})), nil),
		}
		plan, err := New().Resolve(ctx, units, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a"}, {"b"}}, plan.Stages)
		assert.Len(t, plan.Wiring, 1)
	})

	t.Run("kind match used when no schema fits", func(t *testing.T) {
		units := []model.UnitSummary{
			unit("b", nil, p(out("other", "data", testutil.Col("x")))),
			unit("c", p(in("in", "data", testutil.Col("id")), in("m", "model")), nil),
			unit("d", nil, p(out("trained", "model"))),
		}
		plan, err := New().Resolve(ctx, units, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"b", "d"}, {"c"}}, plan.Stages)
		want := []model.Wire{
			{SourceUnit: "b", SourcePort: "other", TargetUnit: "c", TargetPort: "in", Channel: "b_other"},
			{SourceUnit: "d", SourcePort: "trained", TargetUnit: "c", TargetPort: "m", Channel: "d_trained"},
		}
		assert.Equal(t, want, plan.Wiring)
	})
}

func TestResolve_ParallelStagesAndUnwiredInputs(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := []model.UnitSummary{
		unit("src", nil, p(out("rows", "DATA"))),
		unit("left", p(in("rows", "data"), in("cfg", "folder")), nil),
		unit("right", p(in("rows", "data")), nil),
	}

	plan, err := New().Resolve(ctx, units, nil)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"src"}, {"left", "right"}}, plan.Stages)
	assert.Equal(t, []string{"src", "left", "right"}, plan.ExecutionOrder)
	_, ok := plan.WireFor("left", "cfg")
	assert.False(t, ok, "no folder producer, input stays unwired")
	assert.Len(t, plan.Wiring, 2)
}

func TestResolve_EmptySelection(t *testing.T) {
	ctx, _ := testutil.Context(t)
	plan, err := New().Resolve(ctx, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, plan.ExecutionOrder)
	assert.NotNil(t, plan.Stages)
	assert.NotNil(t, plan.Wiring)
	assert.Empty(t, plan.ExecutionOrder)
}

func TestResolve_InvalidArguments(t *testing.T) {
	ctx, _ := testutil.Context(t)
	units := threeUnitChain()

	testCases := []struct {
		name    string
		units   []model.UnitSummary
		hints   []model.WireHint
		wantErr error
		msg     string
	}{
		{
			name:    "duplicate unit",
			units:   append(threeUnitChain(), unit("A", nil, nil)),
			wantErr: ErrDuplicateUnit,
			msg:     `"A"`,
		},
		{
			name:    "unknown source unit",
			units:   units,
			hints:   []model.WireHint{hint(t, "Z.raw", "C.in")},
			wantErr: ErrInvalidHint,
			msg:     `source unit "Z" is not selected`,
		},
		{
			name:    "unknown target unit",
			units:   units,
			hints:   []model.WireHint{hint(t, "A.raw", "Z.in")},
			wantErr: ErrInvalidHint,
			msg:     `target unit "Z" is not selected`,
		},
		{
			name:    "unknown output",
			units:   units,
			hints:   []model.WireHint{hint(t, "A.nope", "C.in")},
			wantErr: ErrInvalidHint,
			msg:     `unit "A" has no output "nope"`,
		},
		{
			name:    "unknown input",
			units:   units,
			hints:   []model.WireHint{hint(t, "A.raw", "C.nope")},
			wantErr: ErrInvalidHint,
			msg:     `unit "C" has no input "nope"`,
		},
		{
			name:    "input wired twice",
			units:   units,
			hints:   []model.WireHint{hint(t, "A.raw", "C.in"), hint(t, "B.clean", "C.in")},
			wantErr: ErrInvalidHint,
			msg:     "input C.in is wired from both A.raw and B.clean",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Resolve(ctx, tc.units, tc.hints)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

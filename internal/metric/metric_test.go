package metric

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gometric/internal/model"
)

// fakeGenerator 记录调用顺序，并在 PerFileInfo 中写入一条说明。
type fakeGenerator struct {
	name    string
	steps   *[]string
	emitErr error
}

func (f *fakeGenerator) Metric() string { return f.name }

func (f *fakeGenerator) Emit(context.Context) error {
	*f.steps = append(*f.steps, f.name+":emit")
	return f.emitErr
}

func (f *fakeGenerator) Analyze() error {
	*f.steps = append(*f.steps, f.name+":analyze")
	return nil
}

func (f *fakeGenerator) Report() model.Report {
	return model.Report{f.name: model.Report{"matches": []string{f.name}}}
}

func (f *fakeGenerator) PerFileInfo(_ context.Context, sink *model.Sink) error {
	*f.steps = append(*f.steps, f.name+":per_file_info")
	sink.Append("a.rb", "1", model.Annotation{Type: f.name, Description: "from " + f.name})
	return nil
}

func TestRunSequencesGeneratorsAndMergesReports(t *testing.T) {
	var steps []string
	generators := []Generator{
		&fakeGenerator{name: "reek", steps: &steps},
		&fakeGenerator{name: "flay", steps: &steps},
	}

	sink := model.NewSink()
	report, err := Run(context.Background(), generators, sink)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"reek:emit", "reek:analyze", "reek:per_file_info",
		"flay:emit", "flay:analyze", "flay:per_file_info",
	}, steps)
	assert.Contains(t, report, "reek")
	assert.Contains(t, report, "flay")
	assert.Equal(t, []model.Annotation{
		{Type: "reek", Description: "from reek"},
		{Type: "flay", Description: "from flay"},
	}, sink.Lines("a.rb")["1"])
}

func TestRunStopsAtFirstError(t *testing.T) {
	var steps []string
	boom := errors.New("boom")
	generators := []Generator{
		&fakeGenerator{name: "reek", steps: &steps, emitErr: boom},
		&fakeGenerator{name: "flay", steps: &steps},
	}

	_, err := Run(context.Background(), generators, model.NewSink())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"reek:emit"}, steps)
}

func TestRegistry(t *testing.T) {
	var steps []string
	registry := NewRegistry()

	require.NoError(t, registry.Register("reek", func() (Generator, error) {
		return &fakeGenerator{name: "reek", steps: &steps}, nil
	}))
	require.NoError(t, registry.Register("flay", func() (Generator, error) {
		return nil, errors.New("flay is not installed")
	}))

	assert.Error(t, registry.Register("reek", func() (Generator, error) { return nil, nil }))
	assert.Error(t, registry.Register("", nil))
	assert.Equal(t, []string{"flay", "reek"}, registry.Names())

	generator, err := registry.New("reek")
	require.NoError(t, err)
	assert.Equal(t, "reek", generator.Metric())

	_, err = registry.New("flay")
	assert.ErrorContains(t, err, "flay is not installed")

	_, err = registry.New("saikuro")
	assert.ErrorContains(t, err, "unknown metric")
}

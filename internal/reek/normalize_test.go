package reek

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"gometric/internal/model"
)

func TestNormalizeGroupsBySourceInFirstSeenOrder(t *testing.T) {
	examinations := []Examination{
		NewExamination("lib/b.rb",
			warning("lib/b.rb", "B#one", "TooManyStatements", "has approx 7 statements", 3),
			warning("lib/a.rb", "A#two", "UtilityFunction", "doesn't depend on instance state", 9),
		),
		NewExamination("lib/a.rb",
			warning("lib/b.rb", "B#three", "FeatureEnvy", "refers to 'other' more than self", 12, 14),
		),
	}

	want := []model.FileFinding{
		{
			FilePath: "lib/b.rb",
			CodeSmells: []model.SmellRecord{
				{Method: "B#one", Message: "has approx 7 statements", Type: "TooManyStatements", Lines: []int{3}},
				{Method: "B#three", Message: "refers to 'other' more than self", Type: "FeatureEnvy", Lines: []int{12, 14}},
			},
		},
		{
			FilePath: "lib/a.rb",
			CodeSmells: []model.SmellRecord{
				{Method: "A#two", Message: "doesn't depend on instance state", Type: "UtilityFunction", Lines: []int{9}},
			},
		},
	}

	if diff := cmp.Diff(want, Normalize(examinations)); diff != "" {
		t.Fatalf("normalized findings mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePrefersSubclass(t *testing.T) {
	examinations := []Examination{
		NewExamination("a.rb",
			subclassed("a.rb", "Foo#bar", "ControlCouple", "UnusedParameter", "has unused parameter 'x'"),
			warning("a.rb", "Foo#baz", "Duplication", "calls 'x' twice"),
		),
	}

	findings := Normalize(examinations)
	if assert.Len(t, findings, 1) && assert.Len(t, findings[0].CodeSmells, 2) {
		assert.Equal(t, "UnusedParameter", findings[0].CodeSmells[0].Type)
		assert.Equal(t, "Duplication", findings[0].CodeSmells[1].Type)
	}
}

func TestNormalizeKeepsDuplicates(t *testing.T) {
	smell := warning("a.rb", "Foo#bar", "Duplication", "calls 'x' twice", 2)
	findings := Normalize([]Examination{NewExamination("a.rb", smell, smell)})

	assert.Len(t, findings, 1)
	assert.Len(t, findings[0].CodeSmells, 2)
}

func TestNormalizeDistinctSourcesAndCompleteness(t *testing.T) {
	examinations := []Examination{
		NewExamination("x", warning("a.rb", "A", "T", "m"), warning("b.rb", "B", "T", "m")),
		NewExamination("y", warning("c.rb", "C", "T", "m"), warning("a.rb", "A#x", "T", "m")),
		NewExamination("z"),
	}

	findings := Normalize(examinations)
	assert.Len(t, findings, 3)

	total := 0
	for _, finding := range findings {
		total += len(finding.CodeSmells)
	}
	assert.Equal(t, 4, total)
}

func TestNormalizeEmpty(t *testing.T) {
	findings := Normalize(nil)
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}

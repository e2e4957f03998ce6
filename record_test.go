package showreel_test

import (
	"testing"

	"github.com/fwojciec/showreel"
	"github.com/stretchr/testify/assert"
)

func TestNewRecord_ContainersPresent(t *testing.T) {
	t.Parallel()

	rec := showreel.NewRecord()

	assert.NotNil(t, rec.Media)
	assert.NotNil(t, rec.Companies)
	assert.NotNil(t, rec.Meta.UnknownRoles)
	assert.Empty(t, rec.Media)
	assert.Empty(t, rec.Companies)
}

func TestRecord_Normalize(t *testing.T) {
	t.Parallel()

	rec := &showreel.Record{
		Companies: []showreel.Company{{Name: "Cactus"}},
	}
	rec.Normalize()

	assert.NotNil(t, rec.Media)
	assert.NotNil(t, rec.Meta.UnknownRoles)
	assert.NotNil(t, rec.Companies[0].Credits)
}

func TestRecord_FieldCount(t *testing.T) {
	t.Parallel()

	t.Run("empty record counts zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, showreel.NewRecord().FieldCount())
	})

	t.Run("counts populated fields only", func(t *testing.T) {
		t.Parallel()

		rec := showreel.NewRecord()
		rec.Title = "Play by Play"
		rec.Media = append(rec.Media, showreel.Media{Type: showreel.MediaVideo, URL: "https://v"})

		assert.Equal(t, 2, rec.FieldCount())
	})
}

func TestRecord_CreditCount(t *testing.T) {
	t.Parallel()

	rec := showreel.NewRecord()
	rec.Companies = []showreel.Company{
		{Name: "Cactus", Credits: []showreel.Credit{
			{Role: "Director", Person: showreel.Person{Name: "A"}},
			{Role: "Producer", Person: showreel.Person{Name: "B"}},
		}},
		{Name: "Brandhouse"},
	}

	assert.Equal(t, 2, rec.CreditCount())
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Creative Director", showreel.CleanText("  Creative \n\t Director "))
	assert.Empty(t, showreel.CleanText("   "))
}

func TestSplitPersons(t *testing.T) {
	t.Parallel()

	t.Run("comma separated", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"Ana", "Ben"}, showreel.SplitPersons("Ana, Ben"))
	})

	t.Run("comma and conjunction", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"Ana", "Ben", "Cleo"}, showreel.SplitPersons("Ana, Ben and Cleo"))
	})

	t.Run("single name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"Ana"}, showreel.SplitPersons("Ana"))
	})
}

func TestGuessCompanyType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Stink Films", "Production"},
		{"Wieden Creative Agency", "Agency"},
		{"The Mill Post", "Post Production"},
		{"String and Tins Sound", "Sound"},
		{"Unrelated Name", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, showreel.GuessCompanyType(tt.name), tt.name)
	}
}

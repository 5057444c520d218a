package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/qotd/internal/entities"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Printer{Out: &out, Err: &errOut, NoColor: true}, &out, &errOut
}

func TestPrinter_Messages(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Success("saved %d", 3)
	p.Info("testing")
	p.Warn("careful")
	p.Error("boom: %s", "disk")

	assert.Equal(t, "saved 3\ntesting\ncareful\n", out.String())
	assert.Equal(t, "Error: boom: disk\n", errOut.String())
}

func TestPrinter_ModeBanner(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		p, out, _ := newTestPrinter()
		p.ModeBanner("local", "")
		assert.Equal(t, "[local (SQLite)]\n", out.String())
	})

	t.Run("remote", func(t *testing.T) {
		p, out, _ := newTestPrinter()
		p.ModeBanner("remote", "https://qotd.example.com")
		assert.Equal(t, "[remote (https://qotd.example.com)]\n", out.String())
	})
}

func TestPrinter_QuestionTable(t *testing.T) {
	p, out, _ := newTestPrinter()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	p.QuestionTable([]entities.Question{
		{
			ID:               7,
			Text:             "What is the best advice you have ever received?",
			SeriousnessLevel: 3,
			Categories:       []entities.Category{{Name: "deep"}, {Name: "life"}},
			CreatedAt:        now.Add(-3 * 24 * time.Hour),
		},
	}, now)

	s := out.String()
	assert.Contains(t, s, "ID")
	assert.Contains(t, s, "What is the best advice you have ever received?")
	assert.Contains(t, s, "deep, life")
	assert.Contains(t, s, "3 days ago")
}

func TestPrinter_Stats(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.Stats(&entities.Stats{
		Total:      1200,
		ByLevel:    []entities.LevelCount{{SeriousnessLevel: 1, Count: 1000}, {SeriousnessLevel: 2, Count: 200}},
		ByCategory: []entities.CategoryCount{{Name: "fun", Color: "#FFC914", Count: 1200}},
	})

	s := out.String()
	assert.Contains(t, s, "Questions: 1,200")
	assert.Contains(t, s, "  1: 1000")
	assert.Contains(t, s, "fun")
	assert.Contains(t, s, "#FFC914")
}

func TestPrinter_JSON(t *testing.T) {
	p, out, _ := newTestPrinter()

	err := p.JSON(map[string]int{"count": 2})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"count": 2}`, out.String())
}

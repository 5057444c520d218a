package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/exporters"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImport_TextFile(t *testing.T) {
	env := newCLIEnv(t)
	path := writeFile(t, env.dir, "questions.txt", `# travel prompts
Which city would you move to?

Where did you feel most at home?
`)

	res := env.mustRun("import", path, "-l", "2", "-c", "travel")
	assert.Contains(t, res.stdout, "Imported 2 question(s)")

	res = env.mustRun("list", "-c", "travel", "-l", "2")
	assert.Contains(t, res.stdout, "Total: 2 question(s)")

	res = env.mustRun("import", path, "--skip-duplicates")
	assert.Contains(t, res.stdout, "Skipping 2 duplicate(s)")
	assert.Contains(t, res.stdout, "Imported 0 question(s)")
}

func TestImport_SkipsRepeatsWithinFile(t *testing.T) {
	env := newCLIEnv(t)
	path := writeFile(t, env.dir, "questions.txt", "What is home?\nwhat is HOME\nWho inspires you?\n")

	res := env.mustRun("import", path, "--skip-duplicates")
	assert.Contains(t, res.stdout, "Skipping 1 duplicate(s)")
	assert.Contains(t, res.stdout, "Imported 2 question(s)")
}

func TestImport_ReportsFailedRecords(t *testing.T) {
	env := newCLIEnv(t)
	path := writeFile(t, env.dir, "bank.json", `{"questions": [
		{"text": "What skill would you learn next?", "seriousnessLevel": 1},
		{"text": "A question with a bad level", "seriousnessLevel": 9},
		{"text": "A fine question", "seriousnessLevel": 4, "categories": ["deep"]}
	]}`)

	res := env.run("import", path, "--skip-duplicates")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Imported 2 question(s)")
	assert.Contains(t, res.stdout, `record 2 ("A question with a bad level")`)
	assert.Contains(t, res.stderr, "1 record(s) failed to import")
}

func TestImport_OutOfRangeFailureIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": [], "errors": [{"index": 7, "text": "Where next?", "error": "rejected"}]}`))
	}))
	t.Cleanup(srv.Close)

	env := newCLIEnv(t)
	env.env["QOTD_API_URL"] = srv.URL
	env.env["QOTD_API_KEY"] = "any"
	path := writeFile(t, env.dir, "one.txt", "Where next?\n")

	res := env.run("import", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, `record 8 ("Where next?"): rejected`)
	assert.Contains(t, res.stderr, "1 record(s) failed to import")
}

func TestRecordPosition(t *testing.T) {
	positions := []int{0, 2, 5}
	assert.Equal(t, 2, recordPosition(positions, 1))
	assert.Equal(t, 5, recordPosition(positions, 2))
	assert.Equal(t, 3, recordPosition(positions, 3))
	assert.Equal(t, -1, recordPosition(positions, -1))
}

func TestImport_MissingFile(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run("import", filepath.Join(env.dir, "nope.txt"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to open")
}

func TestExport_RoundTrip(t *testing.T) {
	src := newCLIEnv(t)
	seedQuestions(src)

	out := filepath.Join(src.dir, "bank.yaml")
	res := src.mustRun("export", "-o", out)
	assert.Contains(t, res.stdout, "Exported 3 question(s) to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seriousnessLevel: 4")

	dst := newCLIEnv(t)
	res = dst.mustRun("import", out)
	assert.Contains(t, res.stdout, "Imported 3 question(s)")

	res = dst.mustRun("list", "-c", "books", "-l", "4")
	assert.Contains(t, res.stdout, "Which book changed how you think?")
}

func TestExport_Stdout(t *testing.T) {
	env := newCLIEnv(t)
	seedQuestions(env)

	res := env.mustRun("export")
	assert.Contains(t, res.stderr, "[local (SQLite)]")

	var doc struct {
		Questions []struct {
			Text string `json:"text"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Len(t, doc.Questions, 3)

	res = env.mustRun("export", "-f", "md")
	assert.Contains(t, res.stdout, "# Questions")
	assert.Contains(t, res.stdout, "## Level 4")

	res = env.run("export", "-f", "csv")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `unknown export format "csv"`)
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestExportAndClose_ReportsCloseError(t *testing.T) {
	out := &failingCloser{}
	qs := []entities.Question{{ID: 1, Text: "Where next?", SeriousnessLevel: 1}}

	err := exportAndClose(out, exporters.FormatJSON, qs)
	assert.EqualError(t, err, "disk full")
	assert.True(t, out.closed)
	assert.Contains(t, out.String(), "Where next?")
}

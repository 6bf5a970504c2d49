package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nydauron/scvl2html/schedule"
	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

const sampleCSV = `,SCVL Fall 2024,,,,,,,,
,,,,,,,,,
,Court 1,,,Court 2,,,,,
,,Week 1,,,,,,BYE,
6:30,,REC1 v REC2,REF: REC3,,INT1* v INT2,REF: INT3,,,REC4 REC5
7:30,,REC4 v REC5,REF: REC1,,|SKILLS CLINIC, all levels|,Beginner,,,
,No Games - Thanksgiving,,,,,,,,
,,Week 2,,,,,,BYE,
,SCHEDULE TBA,,,,,,,,
`

const conflictCSV = `,Court 1,,,Court 2,,,,,
,,Week 1,,,,,,BYE,
6:30,,REC1 v REC2,REF: REC3,,REC1 v REC4,REF: REC5,,,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"scvl2html"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestConvertToHTML(t *testing.T) {
	input := writeFile(t, "schedule.csv", sampleCSV)
	output := filepath.Join(t.TempDir(), "index.html")

	if _, _, err := run(t, "-o", output, input); err != nil {
		t.Fatalf("conversion failed: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("h1").Text(); got != "SCVL Fall 2024" {
		t.Errorf("expected heading, got %q", got)
	}
	if got := doc.Find("td.skills_clinic").Text(); got != "SKILLS CLINIC, all levels (Beginner)" {
		t.Errorf("unexpected clinic cell %q", got)
	}
	if got := doc.Find("td.team1.int").Text(); got != "INT1" {
		t.Errorf("expected decorated INT1 cleaned, got %q", got)
	}
	if got := doc.Find("td.bye").Length(); got != 2 {
		t.Errorf("expected 2 bye cells, got %d", got)
	}
}

func TestConvertToYAMLOnStdout(t *testing.T) {
	input := writeFile(t, "schedule.csv", sampleCSV)

	stdout, _, err := run(t, "--format", "yaml", "-o", "-", "--input", input)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	var got struct {
		Title      string              `yaml:"title"`
		TeamCounts schedule.TeamCounts `yaml:"team_counts"`
		Weeks      []struct {
			Title string `yaml:"title"`
			TBA   bool   `yaml:"tba"`
		} `yaml:"weeks"`
	}
	if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not YAML: %v\n%s", err, stdout)
	}
	if got.Title != "SCVL Fall 2024" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.TeamCounts.Rec != 5 || got.TeamCounts.Int != 3 {
		t.Errorf("unexpected counts %+v", got.TeamCounts)
	}
	if len(got.Weeks) != 2 || !got.Weeks[1].TBA {
		t.Errorf("unexpected weeks %+v", got.Weeks)
	}
}

func TestStartColFlag(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(sampleCSV, "\n"), "\n")
	for i, line := range lines {
		lines[i] = ",," + line
	}
	input := writeFile(t, "schedule.csv", strings.Join(lines, "\n")+"\n")

	stdout, _, err := run(t, "--start-col", "2", "-f", "yaml", "-o", "-", input)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if !strings.Contains(stdout, "title: SCVL Fall 2024") {
		t.Errorf("title missing from dump:\n%s", stdout)
	}
}

func TestDebugReportsConflicts(t *testing.T) {
	input := writeFile(t, "schedule.csv", conflictCSV)
	output := filepath.Join(t.TempDir(), "index.html")

	stdout, _, err := run(t, "--debug", "-o", output, input)
	if err != nil {
		t.Fatalf("conflicts must not stop the conversion: %v", err)
	}
	if !strings.Contains(stdout, "CONFLICT: Week 1 6:30: REC1 is booked 2 times (Court 1, Court 2)") {
		t.Errorf("conflict not reported on stdout:\n%s", stdout)
	}
	if !strings.Contains(stdout, "time slot") {
		t.Errorf("expected per-row trace on stdout:\n%s", stdout)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output must still be written: %v", err)
	}
}

func TestNoConflictReportWithoutDebug(t *testing.T) {
	input := writeFile(t, "schedule.csv", conflictCSV)

	stdout, _, err := run(t, "-o", filepath.Join(t.TempDir(), "index.html"), input)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "CONFLICT") {
		t.Errorf("conflicts are only checked in debug mode:\n%s", stdout)
	}
}

func TestFormatErrorLeavesOutputAlone(t *testing.T) {
	input := writeFile(t, "schedule.csv", ",Court 1,,,Court 2,,,,,\n,,Week 1,,,,,,BYE,\n6:30,,REC1 REC2,,,OPEN PLAY,,,,\n")
	output := filepath.Join(t.TempDir(), "index.html")

	_, _, err := run(t, "-o", output, input)
	if !errors.Is(err, schedule.ErrMissingSeparator) {
		t.Fatalf("expected missing separator error, got %v", err)
	}
	if code := exitCode(err); code != 4 {
		t.Errorf("expected exit code 4, got %d", code)
	}
	if !strings.Contains(err.Error(), "row 3, column C") {
		t.Errorf("error does not point at the cell: %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Errorf("output must not be created on failure")
	}
}

func TestUnterminatedQuoteIsFormatError(t *testing.T) {
	input := writeFile(t, "schedule.csv", ",Court 1,,,\n,,|Week 1,,\n")
	_, _, err := run(t, "-o", "-", input)
	if code := exitCode(err); code != 4 {
		t.Errorf("expected exit code 4, got %d (%v)", code, err)
	}
}

func TestMissingInput(t *testing.T) {
	_, _, err := run(t, "-o", "-", filepath.Join(t.TempDir(), "missing.csv"))
	if code := exitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d (%v)", code, err)
	}

	_, _, err = run(t)
	if err == nil || exitCode(err) != 1 {
		t.Errorf("expected usage error without input, got %v", err)
	}
}

func TestBadOptions(t *testing.T) {
	input := writeFile(t, "schedule.csv", sampleCSV)
	tests := map[string][]string{
		"bad format":     {"-f", "pdf", input},
		"long quote":     {"--quote-char", "||", input},
		"comma as quote": {"--quote-char", ",", input},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := run(t, append([]string{"-o", "-"}, args...)...)
			if err == nil || exitCode(err) != 1 {
				t.Errorf("expected usage error, got %v", err)
			}
		})
	}
}

func TestSentinelsFile(t *testing.T) {
	input := writeFile(t, "schedule.csv", strings.ReplaceAll(sampleCSV, "SCVL Fall", "Winter League"))
	sentinels := writeFile(t, "sentinels.yaml", "season_title_prefix: Winter\n")

	stdout, _, err := run(t, "--sentinels", sentinels, "-f", "yaml", "-o", "-", input)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if !strings.Contains(stdout, "title: Winter League 2024") {
		t.Errorf("custom season title not recognized:\n%s", stdout)
	}

	bad := writeFile(t, "bad.yaml", "season_prefix: Winter\n")
	if _, _, err := run(t, "--sentinels", bad, "-o", "-", input); err == nil {
		t.Error("expected unknown sentinel key to fail")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<jobs>
  <job>
    <unique_id>42</unique_id>
    <title lang="en">Clerk</title>
    <title lang="fr">Vendeur</title>
    <schedule>full-time</schedule>
    <category>retail</category>
    <city>Paris</city>
    <province>IDF</province>
    <application_method>email</application_method>
    <application_destination>jobs@x.com</application_destination>
    <company_id>7</company_id>
    <company>Acme</company>
    <company_city>Paris</company_city>
    <company_postal_code>75001</company_postal_code>
    <company_logo_url>http://x/logo.png</company_logo_url>
  </job>
</jobs>`

func writeFeed(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func TestRunWithArgs_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no files", args: nil},
		{name: "bad output", args: []string{"--output", "xml", "feed.xml"}},
		{name: "unknown flag", args: []string{"--nope", "feed.xml"}},
		{name: "stdin twice", args: []string{"-", "feed.xml", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := runWithArgs(tt.args, strings.NewReader(""), &stdout, &stderr); code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
			if stderr.Len() == 0 {
				t.Error("expected usage on stderr")
			}
		})
	}
}

func TestRunWithArgs_JSON(t *testing.T) {
	path := writeFeed(t, "feed.xml", feed)

	var stdout, stderr bytes.Buffer
	code := runWithArgs([]string{path}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	var results []fileResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout.String())
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}
	job := results[0].Jobs[0]
	if job.ID != "42" || len(job.Translations) != 2 || job.Translations[1].Title != "Vendeur" {
		t.Errorf("job = %+v", job)
	}
}

func TestRunWithArgs_YAMLFromStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runWithArgs([]string{"--output", "yaml", "-"}, strings.NewReader(feed), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	var results []map[string]any
	if err := yaml.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, stdout.String())
	}
	if len(results) != 1 || results[0]["file"] != "-" || results[0]["success"] != true {
		t.Errorf("results = %v", results)
	}
}

func TestRunWithArgs_InvalidFeed(t *testing.T) {
	good := writeFeed(t, "good.xml", feed)
	bad := writeFeed(t, "bad.xml", strings.Replace(feed, "    <city>Paris</city>\n", "    <city>Paris</city>\n    <salary>1000</salary>\n", 1))

	var stdout, stderr bytes.Buffer
	code := runWithArgs([]string{good, bad}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if !strings.Contains(stderr.String(), bad+":") {
		t.Errorf("stderr should report diagnostics for %s: %s", bad, stderr.String())
	}

	var results []fileResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].File != good || !results[0].Success {
		t.Errorf("first result = %+v", results[0])
	}
	if results[1].File != bad || results[1].Success || results[1].Errors != "File is not valid" {
		t.Errorf("second result = %+v", results[1])
	}
}

func TestRunWithArgs_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runWithArgs([]string{filepath.Join(t.TempDir(), "absent.xml")}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunWithArgs_SkipIncomplete(t *testing.T) {
	noLogo := strings.Replace(feed, "    <company_logo_url>http://x/logo.png</company_logo_url>\n", "", 1)
	second := strings.SplitN(noLogo, "<jobs>", 2)[1]
	path := writeFeed(t, "feed.xml", strings.Replace(feed, "</jobs>", "", 1)+second)

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{path}, strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Errorf("strict exit code = %d, want 1", code)
	}

	stdout.Reset()
	stderr.Reset()
	if code := runWithArgs([]string{"--skip-incomplete", path}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("skip exit code = %d, stderr = %s", code, stderr.String())
	}

	var results []fileResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(results[0].Jobs) != 1 || len(results[0].Skipped) != 1 {
		t.Errorf("result = %+v, want one job and one skipped", results[0])
	}
}

package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/jobimport/internal/core"
)

const acmeFeed = `<?xml version="1.0" encoding="UTF-8"?>
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

func newDefinition(t *testing.T, opts Options) core.FormatDefinition {
	t.Helper()

	def, err := HotellerieJobs(opts)
	if err != nil {
		t.Fatalf("HotellerieJobs error = %v", err)
	}
	return def
}

func TestHotellerieJobs_EndToEnd(t *testing.T) {
	def := newDefinition(t, Options{})

	result, err := def.Parse([]byte(acmeFeed))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if len(result.Jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(result.Jobs))
	}

	want := core.JobRecord{
		ID:                     "42",
		Schedule:               "full-time",
		Category:               "retail",
		City:                   "Paris",
		Province:               "IDF",
		ApplicationMethod:      "email",
		ApplicationDestination: "jobs@x.com",
		Company: core.Company{
			ID:         "7",
			Name:       "Acme",
			City:       "Paris",
			PostalCode: "75001",
			LogoURL:    "http://x/logo.png",
		},
		Translations: []core.Translation{
			{Language: "en", Title: "Clerk"},
			{Language: "fr", Title: "Vendeur"},
		},
	}
	if got := result.Jobs[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("job = %+v\nwant %+v", got, want)
	}
}

func TestHotellerieJobs_InterleavedTranslations(t *testing.T) {
	def := newDefinition(t, Options{})

	feed := strings.Replace(acmeFeed,
		`<title lang="fr">Vendeur</title>`,
		`<description lang="en">Front desk</description>
    <title lang="fr">Vendeur</title>
    <description lang="fr">Accueil</description>
    <requirements>Smile</requirements>`, 1)

	result, err := def.Parse([]byte(feed))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	want := []core.Translation{
		{Language: "en", Title: "Clerk", Description: "Front desk", Requirements: "Smile"},
		{Language: "fr", Title: "Vendeur", Description: "Accueil"},
	}
	if got := result.Jobs[0].Translations; !reflect.DeepEqual(got, want) {
		t.Errorf("Translations = %+v, want %+v", got, want)
	}
}

func TestHotellerieJobs_SchemaViolation(t *testing.T) {
	def := newDefinition(t, Options{})

	feed := strings.Replace(acmeFeed, "    <city>Paris</city>\n", "    <city>Paris</city>\n    <salary>1000</salary>\n", 1)
	_, err := def.Parse([]byte(feed))

	diags, ok := core.DiagnosticsOf(err)
	if !ok {
		t.Fatalf("expected schema violation, got %v", err)
	}
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if diags[0].Line <= 0 || diags[0].Column <= 0 {
		t.Errorf("first diagnostic position = %d:%d, want positive", diags[0].Line, diags[0].Column)
	}
}

func TestHotellerieJobs_FlexibleFieldOrder(t *testing.T) {
	def := newDefinition(t, Options{})

	feed := `<jobs>
  <job>
    <unique_id>42</unique_id>
    <schedule>part-time</schedule>
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
    <schedule>full-time</schedule>
    <title lang="en">Clerk</title>
    <title lang="fr">Vendeur</title>
  </job>
</jobs>`

	result, err := def.Parse([]byte(feed))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	job := result.Jobs[0]
	if job.Schedule != "full-time" {
		t.Errorf("Schedule = %q, want %q", job.Schedule, "full-time")
	}
	want := []core.Translation{
		{Language: "en", Title: "Clerk"},
		{Language: "fr", Title: "Vendeur"},
	}
	if !reflect.DeepEqual(job.Translations, want) {
		t.Errorf("Translations = %+v, want %+v", job.Translations, want)
	}
}

func TestHotellerieJobs_MissingFieldIsIncomplete(t *testing.T) {
	def := newDefinition(t, Options{})

	feed := strings.Replace(acmeFeed, "    <city>Paris</city>\n", "", 1)
	_, err := def.Parse([]byte(feed))

	ie, ok := core.AsImportError(err)
	if !ok || ie.Kind != core.KindIncompleteRecord {
		t.Fatalf("expected incomplete record error, got %v", err)
	}
	if !strings.Contains(ie.Message, "city") {
		t.Errorf("Message = %q, want it to name city", ie.Message)
	}
}

func TestHotellerieJobs_EmptyJobs(t *testing.T) {
	def := newDefinition(t, Options{})

	_, err := def.Parse([]byte("<jobs></jobs>"))
	if _, ok := core.DiagnosticsOf(err); !ok {
		t.Fatalf("expected schema violation for empty feed, got %v", err)
	}
}

func TestHotellerieJobs_MissingLogo(t *testing.T) {
	feed := strings.Replace(acmeFeed, "    <company_logo_url>http://x/logo.png</company_logo_url>\n", "", 1)

	t.Run("fails document by default", func(t *testing.T) {
		def := newDefinition(t, Options{})

		_, err := def.Parse([]byte(feed))
		ie, ok := core.AsImportError(err)
		if !ok || ie.Kind != core.KindIncompleteRecord {
			t.Fatalf("expected incomplete record error, got %v", err)
		}
		if !strings.Contains(ie.Message, "company_logo_url") {
			t.Errorf("Message = %q, want missing field named", ie.Message)
		}
	})

	t.Run("skipped when enabled", func(t *testing.T) {
		def := newDefinition(t, Options{SkipIncomplete: true})

		twoJobs := strings.Replace(acmeFeed, "</jobs>", "", 1) +
			strings.Replace(strings.SplitN(feed, "<jobs>", 2)[1], "<unique_id>42", "<unique_id>43", 1)

		result, err := def.Parse([]byte(twoJobs))
		if err != nil {
			t.Fatalf("Parse error = %v", err)
		}
		if len(result.Jobs) != 1 || result.Jobs[0].ID != "42" {
			t.Errorf("Jobs = %+v, want only job 42", result.Jobs)
		}
		if len(result.Skipped) != 1 || result.Skipped[0].Index != 2 {
			t.Errorf("Skipped = %+v, want second job", result.Skipped)
		}
	})
}

func TestHotellerieJobs_SchemaDir(t *testing.T) {
	t.Run("override directory", func(t *testing.T) {
		data, err := fs.ReadFile(Embedded(), HotellerieJobsSchemaFile)
		if err != nil {
			t.Fatalf("read embedded schema: %v", err)
		}

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, HotellerieJobsSchemaFile), data, 0o644); err != nil {
			t.Fatalf("write schema: %v", err)
		}

		def := newDefinition(t, Options{SchemaDir: dir})
		if _, err := def.Parse([]byte(acmeFeed)); err != nil {
			t.Errorf("Parse error = %v", err)
		}
	})

	t.Run("missing schema", func(t *testing.T) {
		_, err := HotellerieJobs(Options{SchemaDir: t.TempDir()})
		if err == nil {
			t.Fatal("expected error for directory without schema")
		}
		if !strings.Contains(err.Error(), HotellerieJobsFormat) {
			t.Errorf("error = %q, want format name", err)
		}
	})
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry(Options{})
	if err != nil {
		t.Fatalf("NewRegistry error = %v", err)
	}
	if got := registry.Keys(); !reflect.DeepEqual(got, []string{HotellerieJobsFormat}) {
		t.Errorf("Keys = %v", got)
	}

	result, err := registry.Parse(HotellerieJobsFormat, []byte(acmeFeed))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if result.Jobs[0].Company.Name != "Acme" {
		t.Errorf("company = %q, want Acme", result.Jobs[0].Company.Name)
	}
}

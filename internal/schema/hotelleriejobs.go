// Package schema defines the job feed formats the importer understands.
//
// Each format pairs an XSD document with a [core.Layout] describing how its
// job elements map onto [core.JobRecord]. Schemas are embedded in the binary;
// a deployment can point at a directory of replacement files instead.
package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/JonMunkholm/jobimport/internal/core"
)

// HotellerieJobsFormat is the identifier clients send to import a
// hotellerie jobs feed.
const HotellerieJobsFormat = "xml-hotelleriejobs"

// HotellerieJobsSchemaFile is the schema's file name, both embedded and in an
// override directory.
const HotellerieJobsSchemaFile = "xml-hotelleriejobs.xsd"

//go:embed xsd/*.xsd
var embedded embed.FS

// Embedded returns the bundled schema files rooted at their directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "xsd")
	if err != nil {
		panic(fmt.Sprintf("embedded schemas: %v", err))
	}
	return sub
}

// HotellerieJobsFields maps the flat children of a job element.
// Every field is required; a job lacking one cannot be assembled.
var HotellerieJobsFields = []core.FieldSpec{
	{Element: "unique_id", Required: true, Assign: func(j *core.JobRecord, v string) { j.ID = v }},
	{Element: "schedule", Required: true, Assign: func(j *core.JobRecord, v string) { j.Schedule = v }},
	{Element: "category", Required: true, Assign: func(j *core.JobRecord, v string) { j.Category = v }},
	{Element: "city", Required: true, Assign: func(j *core.JobRecord, v string) { j.City = v }},
	{Element: "province", Required: true, Assign: func(j *core.JobRecord, v string) { j.Province = v }},
	{Element: "application_method", Required: true, Assign: func(j *core.JobRecord, v string) { j.ApplicationMethod = v }},
	{Element: "application_destination", Required: true, Assign: func(j *core.JobRecord, v string) { j.ApplicationDestination = v }},
	{Element: "company_id", Required: true, Assign: func(j *core.JobRecord, v string) { j.Company.ID = v }},
	{Element: "company", Required: true, Assign: func(j *core.JobRecord, v string) { j.Company.Name = v }},
	{Element: "company_city", Required: true, Assign: func(j *core.JobRecord, v string) { j.Company.City = v }},
	{Element: "company_postal_code", Required: true, Assign: func(j *core.JobRecord, v string) { j.Company.PostalCode = v }},
	{Element: "company_logo_url", Required: true, Assign: func(j *core.JobRecord, v string) { j.Company.LogoURL = v }},
}

// HotellerieJobsLayout is the record layout of the hotellerie jobs feed.
var HotellerieJobsLayout = core.Layout{
	Fields:              HotellerieJobsFields,
	TitleElement:        "title",
	DescriptionElement:  "description",
	RequirementsElement: "requirements",
	LanguageAttr:        "lang",
	DefaultLanguage:     "en",
}

// Options selects where schemas are loaded from and how incomplete jobs are
// treated.
type Options struct {
	// SchemaDir overrides the embedded schemas when non-empty.
	SchemaDir      string
	SkipIncomplete bool
}

// HotellerieJobs compiles the hotellerie jobs schema and returns its format
// definition.
func HotellerieJobs(opts Options) (core.FormatDefinition, error) {
	fsys := Embedded()
	if opts.SchemaDir != "" {
		fsys = os.DirFS(opts.SchemaDir)
	}

	validator, err := core.LoadSchemaValidator(fsys, HotellerieJobsSchemaFile)
	if err != nil {
		return core.FormatDefinition{}, fmt.Errorf("%s: %w", HotellerieJobsFormat, err)
	}

	return core.FormatDefinition{
		Info: core.FormatInfo{
			Key:        HotellerieJobsFormat,
			Label:      "Hotellerie jobs (XML)",
			SchemaFile: HotellerieJobsSchemaFile,
		},
		Validator: validator,
		Assembler: &core.Assembler{
			Layout:         HotellerieJobsLayout,
			SkipIncomplete: opts.SkipIncomplete,
		},
	}, nil
}

// NewRegistry builds a registry holding every supported format.
func NewRegistry(opts Options) (*core.Registry, error) {
	def, err := HotellerieJobs(opts)
	if err != nil {
		return nil, err
	}

	registry := core.NewRegistry()
	registry.Register(def)
	return registry, nil
}

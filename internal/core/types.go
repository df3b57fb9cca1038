package core

// Company is the employer attached to a single job. It is owned by its
// JobRecord and never shared between records.
type Company struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	City       string `json:"city" yaml:"city"`
	PostalCode string `json:"postal_code" yaml:"postal_code"`
	LogoURL    string `json:"logo_url" yaml:"logo_url"`
}

// Translation is the per-language text bundle of a job.
// Fields stay empty until a source element supplies them.
type Translation struct {
	Language     string `json:"language" yaml:"language"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Requirements string `json:"requirements" yaml:"requirements"`
}

// JobRecord is one normalized job posting.
type JobRecord struct {
	ID                     string        `json:"id" yaml:"id"`
	Schedule               string        `json:"schedule" yaml:"schedule"`
	Category               string        `json:"category" yaml:"category"`
	City                   string        `json:"city" yaml:"city"`
	Province               string        `json:"province" yaml:"province"`
	ApplicationMethod      string        `json:"application_method" yaml:"application_method"`
	ApplicationDestination string        `json:"application_destination" yaml:"application_destination"`
	Company                Company       `json:"company" yaml:"company"`
	Translations           []Translation `json:"translations" yaml:"translations"`
}

// SkippedJob describes a job element dropped because required fields were
// missing. Only produced when the assembler runs with SkipIncomplete.
type SkippedJob struct {
	Index   int      `json:"index" yaml:"index"` // 1-based position among the root's job elements
	Line    int      `json:"line" yaml:"line"`
	Missing []string `json:"missing" yaml:"missing"`
}

// ParseResult is the successful outcome of parsing one document.
// Jobs is never empty.
type ParseResult struct {
	Jobs    []JobRecord  `json:"jobs" yaml:"jobs"`
	Skipped []SkippedJob `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// FieldSpec maps one flat child element of a job to a JobRecord field.
type FieldSpec struct {
	Element  string                             // Local name of the child element
	Required bool                               // Absence makes the job incomplete
	Assign   func(job *JobRecord, value string) // Stores the element's text on the record
}

// Layout describes how a feed's job elements map onto JobRecord.
type Layout struct {
	Fields []FieldSpec

	// Element names scanned for translated text. An empty name disables that pass.
	TitleElement        string
	DescriptionElement  string
	RequirementsElement string

	// LanguageAttr is the attribute carrying the language code; any namespace
	// matches, so both lang and xml:lang are accepted.
	LanguageAttr    string
	DefaultLanguage string
}

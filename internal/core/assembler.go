package core

import (
	"fmt"
	"strings"
)

// Assembler converts a validated Document into job records.
//
// Each child element of the document root is one job. Its immediate child
// elements form a flat field dictionary (the last occurrence of a repeated
// name wins) that is mapped onto JobRecord through the Layout's FieldSpecs.
// Translations are rebuilt separately from the language-tagged text elements.
type Assembler struct {
	Layout Layout

	// SkipIncomplete drops jobs missing required fields and reports them in
	// ParseResult.Skipped. When false, one incomplete job fails the document.
	SkipIncomplete bool
}

// Assemble builds one JobRecord per job element, in document order.
// It never returns a partial result unless SkipIncomplete is set.
func (a *Assembler) Assemble(doc *Document) (*ParseResult, error) {
	if doc == nil || doc.Root == nil {
		return nil, incompleteRecord("document has no root element")
	}

	elements := doc.Root.ChildElements()
	if len(elements) == 0 {
		return nil, incompleteRecord("document contains no jobs")
	}

	result := &ParseResult{Jobs: make([]JobRecord, 0, len(elements))}
	var incomplete []SkippedJob

	for i, el := range elements {
		job, missing := a.assembleJob(el)
		if len(missing) > 0 {
			incomplete = append(incomplete, SkippedJob{Index: i + 1, Line: el.Line, Missing: missing})
			continue
		}
		result.Jobs = append(result.Jobs, job)
	}

	if len(incomplete) > 0 {
		if !a.SkipIncomplete || len(result.Jobs) == 0 {
			return nil, incompleteRecord(describeIncomplete(incomplete))
		}
		result.Skipped = incomplete
	}

	return result, nil
}

// assembleJob maps one job element. missing lists the required elements
// that were absent, in Layout order.
func (a *Assembler) assembleJob(el *Node) (JobRecord, []string) {
	fields := fieldDictionary(el)

	var job JobRecord
	var missing []string
	for _, spec := range a.Layout.Fields {
		value, ok := fields[spec.Element]
		if !ok {
			if spec.Required {
				missing = append(missing, spec.Element)
			}
			continue
		}
		spec.Assign(&job, value)
	}

	job.Translations = a.Layout.translations(el)
	return job, missing
}

// fieldDictionary maps each immediate child element name to its text.
func fieldDictionary(el *Node) map[string]string {
	fields := make(map[string]string, len(el.Children))
	for _, child := range el.ChildElements() {
		fields[child.Name] = child.Text()
	}
	return fields
}

func describeIncomplete(jobs []SkippedJob) string {
	parts := make([]string, 0, len(jobs))
	for _, j := range jobs {
		parts = append(parts, fmt.Sprintf("job %d (line %d) is missing %s",
			j.Index, j.Line, strings.Join(j.Missing, ", ")))
	}
	return "Missing required fields: " + strings.Join(parts, "; ")
}

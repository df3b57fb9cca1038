package core

import (
	"fmt"
	"strings"

	xsderrors "github.com/jacoelho/xsd/errors"
)

// Diagnostic levels and domains.
const (
	LevelError = "Error"

	DomainParser         = "parser"
	DomainSchema         = "schema"
	DomainSchemaValidity = "schema-validity"
)

// Diagnostic is one positioned schema violation.
// Line and Column are 0 when the validator could not place the violation.
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Message string `json:"message" yaml:"message"`
	Level   string `json:"level" yaml:"level"`
	Domain  string `json:"domain" yaml:"domain"`
	Code    int    `json:"code" yaml:"code"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"` // W3C constraint, e.g. cvc-complex-type.2.4.b
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", d.Line, d.Column, d.Message)
	}
	return d.Message
}

// diagnosticCodes assigns stable numeric codes to validator rules.
// Codes are grouped: 1-99 parser, 100-199 schema loading, 1800+ validity.
var diagnosticCodes = map[xsderrors.ErrorCode]int{
	xsderrors.ErrXMLParse:        1,
	xsderrors.ErrNoRoot:          4,
	xsderrors.ErrSchemaNotLoaded: 100,

	xsderrors.ErrElementNotDeclared:       1801,
	xsderrors.ErrElementAbstract:          1802,
	xsderrors.ErrElementNotNillable:       1803,
	xsderrors.ErrNilElementNotEmpty:       1804,
	xsderrors.ErrXsiTypeInvalid:           1805,
	xsderrors.ErrElementTypeAbstract:      1806,
	xsderrors.ErrElementFixedValue:        1807,
	xsderrors.ErrTextInElementOnly:        1810,
	xsderrors.ErrContentModelInvalid:      1811,
	xsderrors.ErrRequiredElementMissing:   1812,
	xsderrors.ErrUnexpectedElement:        1813,
	xsderrors.ErrAttributeNotDeclared:     1820,
	xsderrors.ErrAttributeProhibited:      1821,
	xsderrors.ErrRequiredAttributeMissing: 1822,
	xsderrors.ErrAttributeFixedValue:      1823,
	xsderrors.ErrWildcardNotDeclared:      1830,
	xsderrors.ErrDatatypeInvalid:          1840,
	xsderrors.ErrFacetViolation:           1841,
	xsderrors.ErrDuplicateID:              1850,
	xsderrors.ErrIDRefNotFound:            1851,
	xsderrors.ErrMultipleIDAttr:           1852,
	xsderrors.ErrIdentityDuplicate:        1860,
	xsderrors.ErrIdentityAbsent:           1861,
	xsderrors.ErrIdentityKeyRefFailed:     1862,

	xsderrors.ErrValidateRootNotDeclared:          1845,
	xsderrors.ErrValidateValueInvalid:             1846,
	xsderrors.ErrValidateValueFacet:               1847,
	xsderrors.ErrValidateSimpleTypeAttrNotAllowed: 1848,
}

// unknownRuleCode is used for rules missing from diagnosticCodes.
const unknownRuleCode = 1899

// isParseFailure reports whether a validator rule means the document was not
// well-formed, as opposed to well-formed but invalid.
func isParseFailure(rule string) bool {
	switch xsderrors.ErrorCode(rule) {
	case xsderrors.ErrXMLParse, xsderrors.ErrNoRoot:
		return true
	}
	return false
}

func newDiagnostic(v xsderrors.Validation) Diagnostic {
	rule := xsderrors.ErrorCode(v.Code)

	code, ok := diagnosticCodes[rule]
	if !ok {
		code = unknownRuleCode
	}

	domain := DomainSchemaValidity
	switch {
	case isParseFailure(v.Code):
		domain = DomainParser
	case rule == xsderrors.ErrSchemaNotLoaded:
		domain = DomainSchema
	}

	return Diagnostic{
		Line:    max(v.Line, 0),
		Column:  max(v.Column, 0),
		Message: diagnosticMessage(v),
		Level:   LevelError,
		Domain:  domain,
		Code:    code,
		Rule:    v.Code,
		Path:    v.Path,
	}
}

func diagnosticMessage(v xsderrors.Validation) string {
	var b strings.Builder
	b.WriteString(v.Message)
	if len(v.Expected) > 0 {
		fmt.Fprintf(&b, " (expected: %s)", strings.Join(v.Expected, ", "))
	}
	if v.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s)", v.Actual)
	}
	return b.String()
}

package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"universal-mapper/internal/common"
)

// Diagnostics collects the findings of one lint or mapping run, split by
// severity. The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding. TypePair ("store.Order->warehouse.Order") and
// FieldPath ("Items[1].Qty") are empty when they do not apply.
type Diagnostic struct {
	Severity  DiagnosticSeverity
	Code      string
	Message   string
	TypePair  string
	FieldPath string
}

type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(severity DiagnosticSeverity, code, message, typePair, fieldPath string) {
	entry := Diagnostic{Severity: severity, Code: code, Message: message, TypePair: typePair, FieldPath: fieldPath}

	switch severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, entry)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, entry)
	default:
		d.Infos = append(d.Infos, entry)
	}
}

// AddError records a problem that makes a remap file unusable.
func (d *Diagnostics) AddError(code, message, typePair, fieldPath string) {
	d.add(DiagnosticError, code, message, typePair, fieldPath)
}

// AddWarning records a field the mapper skipped or a suspicious rule.
func (d *Diagnostics) AddWarning(code, message, typePair, fieldPath string) {
	d.add(DiagnosticWarning, code, message, typePair, fieldPath)
}

// AddInfo records an intentional outcome, such as a field dropped by a rule.
func (d *Diagnostics) AddInfo(code, message, typePair, fieldPath string) {
	d.add(DiagnosticInfo, code, message, typePair, fieldPath)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Len counts diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	res := make([]Diagnostic, 0, d.Len())
	res = append(res, d.Errors...)
	res = append(res, d.Warnings...)

	return append(res, d.Infos...)
}

// Error joins the error diagnostics with "; ", or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[pair] path: [code] message", leaving out the empty parts.
func (d Diagnostic) String() string {
	var where strings.Builder
	if d.TypePair != "" {
		where.WriteString("[" + d.TypePair + "]")
	}

	if d.FieldPath != "" {
		if where.Len() > 0 {
			where.WriteByte(' ')
		}
		where.WriteString(d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if where.Len() == 0 {
		return msg
	}

	return where.String() + ": " + msg
}

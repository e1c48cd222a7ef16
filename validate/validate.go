// Package validate implements the pure, read-only, deterministic
// semantic checker over a document.Document. It never mutates its
// input and never returns an error of its own — semantic findings are
// reported as issues, not as Go errors, per spec.md §7's propagation
// policy.
package validate

import (
	"fmt"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
)

// Severity classifies an Issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Code is a stable diagnostic identifier, never the human message.
type Code string

const (
	CodeEmptyDrawing   Code = "EMPTY_DRAWING"
	CodeMissingLayer0  Code = "MISSING_LAYER_0"
	CodeUndefinedLayer Code = "UNDEFINED_LAYER"
	CodeUndefinedBlock Code = "UNDEFINED_BLOCK"
	CodeInvalidRadius  Code = "INVALID_RADIUS"
	CodeInvalidBounds  Code = "INVALID_BOUNDS"

	// CodeDuplicateHandle is the reserved-but-not-required issue code
	// spec.md §9's Open Question names; implemented here since the
	// validator already walks every entity once and the cost of
	// tracking a seen-handle set is negligible.
	CodeDuplicateHandle Code = "DUPLICATE_HANDLE"
)

// Issue is one validator finding: a severity, a stable code, a human
// message, and a location string (`entity #N`, `layer 'name'`, or
// empty for document scope).
type Issue struct {
	Severity Severity
	Code     Code
	Message  string
	Location string
}

// Result is the ordered issue list produced by Check, plus the
// derived IsValid flag.
type Result struct {
	Issues  []Issue
	IsValid bool
}

// Check runs every ordered validator rule over doc and returns the
// full issue list. Two calls on the same document produce
// byte-identical results.
func Check(doc *document.Document) Result {
	var issues []Issue

	if len(doc.Entities) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeEmptyDrawing,
			Message:  "drawing contains no entities",
		})
	}

	if doc.Layers.Len() > 0 && !doc.Layers.Has("0") {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeMissingLayer0,
			Message:  "layer table is non-empty but defines no layer \"0\"",
		})
	}

	seenHandles := make(map[int]bool)
	for i, e := range doc.Entities {
		loc := fmt.Sprintf("entity #%d", i)

		if e.Layer != "" && !doc.Layers.Has(e.Layer) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeUndefinedLayer,
				Message:  fmt.Sprintf("entity references undefined layer %q", e.Layer),
				Location: loc,
			})
		}

		if ins, ok := e.Geometry.(entity.Insert); ok && ins.BlockName != "" && !doc.Blocks.Has(ins.BlockName) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeUndefinedBlock,
				Message:  fmt.Sprintf("INSERT references undefined block %q", ins.BlockName),
				Location: loc,
			})
		}

		if radius, ok := radiusOf(e.Geometry); ok && radius <= 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeInvalidRadius,
				Message:  fmt.Sprintf("radius %g is not positive", radius),
				Location: loc,
			})
		}

		if e.Handle != 0 {
			if seenHandles[e.Handle] {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Code:     CodeDuplicateHandle,
					Message:  fmt.Sprintf("handle %d is used by more than one entity", e.Handle),
					Location: loc,
				})
			}
			seenHandles[e.Handle] = true
		}
	}

	if !doc.Bounds.Valid() {
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Code:     CodeInvalidBounds,
			Message:  "document has no bounded entities",
		})
	}

	return Result{Issues: issues, IsValid: !hasError(issues)}
}

func radiusOf(g entity.Payload) (float64, bool) {
	switch v := g.(type) {
	case entity.Circle:
		return v.Radius, true
	case entity.Arc:
		return v.Radius, true
	default:
		return 0, false
	}
}

func hasError(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

package models

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityNote    Severity = "note"
	SeverityCaution Severity = "caution"
	SeverityAlert   Severity = "alert"
)

type ReviewAction string

const (
	ReviewActionManual ReviewAction = "manual_review"
	ReviewActionAutoOK ReviewAction = "auto_ok"
)

// User-supplied request context. No defaults applied here; missing fields
// are rendered as placeholders downstream.
type EvaluationContext struct {
	Area             string `json:"area,omitempty"`
	Bedrooms         *int   `json:"bedrooms,omitempty"`
	ManufacturedHome *bool  `json:"manufacturedHome,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

type FindingFlags struct {
	CodeSensitive       bool `json:"codeSensitive,omitempty"`
	NeedsAlternateAngle bool `json:"needsAlternateAngle,omitempty"`
	LowImageQuality     bool `json:"lowImageQuality,omitempty"`
}

// One discrete observation extracted from the photo.
type Finding struct {
	Label          string       `json:"label"`
	Severity       Severity     `json:"severity"`
	Detail         string       `json:"detail"`
	ConfidenceBase int          `json:"confidenceBase"`
	Evidence       []string     `json:"evidence"`
	RiskCues       []string     `json:"riskCues"`
	Flags          FindingFlags `json:"flags"`
}

// Final output of the pipeline. After resolution id/area/model are always
// non-empty and the three slices are always non-nil.
type EvaluationResult struct {
	ID          string    `json:"id"`
	Area        string    `json:"area"`
	Model       string    `json:"model"`
	Findings    []Finding `json:"findings"`
	QuickChecks []string  `json:"quickChecks"`
	Cautions    []string  `json:"cautions"`
}

// Derived view of a finding after policy adjustment. Computed on demand,
// never written back onto the Finding.
type AdjustedFinding struct {
	Finding
	AdjustedConfidence int          `json:"adjustedConfidence"`
	ReviewAction       ReviewAction `json:"reviewAction"`
}

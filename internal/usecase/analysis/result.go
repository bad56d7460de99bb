// Package analysis serves the verification, alterability, and summary
// endpoints. The results are fixed demo payloads keyed off the stored
// document's existence; real scoring engines can slot in behind the same
// service surface later.
package analysis

// AnalysisDetails breaks the verification verdict down per check.
type AnalysisDetails struct {
	StructureValidation   bool `json:"structureValidation"`
	SignatureVerification bool `json:"signatureVerification"`
	ContentIntegrity      bool `json:"contentIntegrity"`
	MetadataAnalysis      bool `json:"metadataAnalysis"`
	TamperingDetection    bool `json:"tamperingDetection"`
}

// LegalCompliance reports formal completeness of the document.
type LegalCompliance struct {
	IsCompliant     bool     `json:"isCompliant"`
	MissingElements []string `json:"missingElements"`
	ComplianceScore int      `json:"complianceScore"`
}

// VerificationResult is the verdict returned by Verify.
type VerificationResult struct {
	IsValid           bool            `json:"isValid"`
	Confidence        int             `json:"confidence"`
	IsAuthentic       bool            `json:"isAuthentic"`
	AuthenticityScore int             `json:"authenticityScore"`
	Issues            []string        `json:"issues"`
	Recommendations   []string        `json:"recommendations"`
	Summary           string          `json:"summary"`
	RiskLevel         string          `json:"riskLevel"`
	AnalysisDetails   AnalysisDetails `json:"analysisDetails"`
	LegalCompliance   LegalCompliance `json:"legalCompliance"`
}

// TechnicalDetails breaks the alterability verdict down per signal.
type TechnicalDetails struct {
	FontConsistency     bool `json:"fontConsistency"`
	TextInsertion       bool `json:"textInsertion"`
	MetadataIntact      bool `json:"metadataIntact"`
	DigitalSignature    bool `json:"digitalSignature"`
	TimestampValidation bool `json:"timestampValidation"`
}

// AlterabilityResult is the verdict returned by Alterability.
type AlterabilityResult struct {
	AlterabilityRisk string           `json:"alterabilityRisk"`
	Confidence       int              `json:"confidence"`
	Findings         []string         `json:"findings"`
	Summary          string           `json:"summary"`
	TechnicalDetails TechnicalDetails `json:"technicalDetails"`
}

// SummaryResult is the digest returned by Summarize.
type SummaryResult struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

func mockVerification() VerificationResult {
	return VerificationResult{
		IsValid:           true,
		Confidence:        95,
		IsAuthentic:       true,
		AuthenticityScore: 92,
		Issues:            []string{"Missing witness signature on page 3"},
		Recommendations: []string{
			"Add witness signature",
			"Verify notary stamp",
			"Check document formatting",
		},
		Summary:   "Document appears to be valid with minor formatting issues. Overall authenticity is high.",
		RiskLevel: "Low",
		AnalysisDetails: AnalysisDetails{
			StructureValidation:   true,
			SignatureVerification: false,
			ContentIntegrity:      true,
			MetadataAnalysis:      true,
			TamperingDetection:    true,
		},
		LegalCompliance: LegalCompliance{
			IsCompliant:     true,
			MissingElements: []string{"witness_signature"},
			ComplianceScore: 85,
		},
	}
}

func mockAlterability() AlterabilityResult {
	return AlterabilityResult{
		AlterabilityRisk: "Low",
		Confidence:       88,
		Findings: []string{
			"Consistent font usage throughout document",
			"No text insertion detected",
			"Original PDF metadata intact",
			"No suspicious formatting changes",
		},
		Summary: "Low risk of alteration detected. Document appears authentic with consistent formatting and metadata.",
		TechnicalDetails: TechnicalDetails{
			FontConsistency:     true,
			TextInsertion:       false,
			MetadataIntact:      true,
			DigitalSignature:    false,
			TimestampValidation: true,
		},
	}
}

func mockSummary() SummaryResult {
	return SummaryResult{
		Summary: "This is a legal document containing standard clauses and terms. The document appears to be " +
			"properly formatted and contains typical legal language and structure.",
		KeyPoints: []string{
			"Document type: Legal contract",
			"Key parties involved",
			"Main terms and conditions",
			"Signatures and dates",
			"Legal compliance requirements",
		},
	}
}

package chat

import (
	"strings"

	"github.com/legalens/docuverify/internal/domain"
)

// Canned answers served when the completion API cannot be used. The document
// itself is deliberately ignored: this is a degraded mode, and the source tag
// plus the lower confidence make that visible to callers.
const (
	clauseAnswer = `Here are the key clauses typically found in this type of document:

1. Definitions: Terms and phrases used throughout the agreement
2. Scope of Work/Services: What is being provided or performed
3. Payment Terms: Amount, schedule, and method of payment
4. Term and Termination: Duration and conditions for ending the agreement
5. Confidentiality: Protection of sensitive information
6. Intellectual Property Rights: Ownership of work product and IP
7. Liability and Indemnification: Risk allocation between parties
8. Force Majeure: Handling of unforeseen circumstances
9. Governing Law: Which jurisdiction's laws apply
10. Dispute Resolution: How conflicts will be handled

Would you like me to explain any of these clauses in more detail?`

	explainAnswer = "This document appears to be a legal agreement. The main points include standard " +
		"contractual terms, obligations between parties, and legal requirements. Would you like " +
		"me to explain any specific section?"

	summarizeAnswer = "The document outlines a legal agreement between parties. It contains sections " +
		"on terms, conditions, obligations, and dispute resolution. Let me know if you need " +
		"details about any particular aspect."

	riskAnswer = "I can help identify potential risks in legal documents. Common areas include " +
		"unclear terms, liability issues, and compliance requirements. Which aspect would you " +
		"like me to analyze?"

	paymentAnswer = `The Payment Terms clause typically covers:
1. Total amount payable
2. Payment schedule (e.g., monthly, quarterly)
3. Payment methods accepted
4. Late payment penalties
5. Currency specifications
6. Invoice requirements
Would you like more details about any of these aspects?`

	terminationAnswer = `The Termination clause outlines:
1. Notice period required
2. Grounds for immediate termination
3. Rights and obligations upon termination
4. Contract wind-down procedures
5. Post-termination obligations
Would you like me to elaborate on any of these points?`

	confidentialityAnswer = `The Confidentiality clause covers:
1. Definition of confidential information
2. Permitted uses of confidential data
3. Protection requirements
4. Duration of confidentiality
5. Return/destruction of confidential materials
Which aspect would you like me to explain further?`

	ipAnswer = `The Intellectual Property clause addresses:
1. Ownership of pre-existing IP
2. Rights to new IP created
3. License grants and restrictions
4. IP warranties and representations
5. Protection obligations
Would you like more information about any of these aspects?`

	defaultAnswer = "I can help you understand the key clauses, terms, obligations, and legal " +
		"implications of this document. What specific aspect would you like me to explain?"
)

// Responder produces deterministic keyword-matched answers. A pure function
// of the message text: identical input always yields identical output.
type Responder struct{}

// Respond picks a canned answer for the message by case-insensitive keyword
// priority: clause list first, then explanation, summary, risk, and the
// specific clause sub-topics, falling back to a generic capability statement.
func (Responder) Respond(message string) domain.ChatResult {
	lower := strings.ToLower(message)

	var answer string
	switch {
	case strings.Contains(lower, "clause") || strings.Contains(lower, "key"):
		answer = clauseAnswer
	case strings.Contains(lower, "explain"):
		answer = explainAnswer
	case strings.Contains(lower, "summarize") || strings.Contains(lower, "summary"):
		answer = summarizeAnswer
	case strings.Contains(lower, "risk") || strings.Contains(lower, "dangerous"):
		answer = riskAnswer
	case strings.Contains(lower, "payment"):
		answer = paymentAnswer
	case strings.Contains(lower, "termination"):
		answer = terminationAnswer
	case strings.Contains(lower, "confidential"):
		answer = confidentialityAnswer
	case strings.Contains(lower, "intellectual") || strings.Contains(lower, "property"):
		answer = ipAnswer
	default:
		answer = defaultAnswer
	}

	return domain.ChatResult{
		Response:   answer,
		Confidence: domain.FallbackConfidence,
		Sources:    []string{domain.SourceLegalReference},
	}
}

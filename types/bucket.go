package types

type Outcome string

const (
	OutcomeAccept Outcome = "accept"
	OutcomeReview Outcome = "review"
	OutcomeReject Outcome = "reject"
)

type Reason string

// 原因代码，ReasonNone只用于accept
const (
	ReasonNone         Reason = ""
	ReasonBothEmpty    Reason = "both-empty"
	ReasonField1Empty  Reason = "field1-empty"
	ReasonField2Empty  Reason = "field2-empty"
	ReasonNoCandidates Reason = "no-candidates"
	ReasonField1TooLow Reason = "field1-similarity-too-low"
	ReasonField2TooLow Reason = "field2-similarity-too-low"
	ReasonPrimaryFloor Reason = "primary-hard-floor"
	ReasonAmbiguousTop Reason = "ambiguous-top-two"
	ReasonBorderline   Reason = "borderline-score"
	ReasonScoreTooLow  Reason = "score-too-low"
)

type BucketOutcome struct {
	Outcome Outcome
	Reason  Reason
}

package onboarding

type StepID string

const (
	StepPersonalInfo    StepID = "personal_info"
	StepI9Section1      StepID = "i9_section1"
	StepDocumentUpload  StepID = "document_upload"
	StepI9Section2      StepID = "i9_section2"
	StepW4              StepID = "w4"
	StepDirectDeposit   StepID = "direct_deposit"
	StepHealthInsurance StepID = "health_insurance"
	StepPolicies        StepID = "policies"
	StepFinalReview     StepID = "final_review"

	// StepI9SupplementB is outside the ordered flow; it is filed by a
	// manager for rehire or reverification cases.
	StepI9SupplementB StepID = "i9_supplement_b"
)

type Step struct {
	ID   StepID
	Name string

	// ManagerOnly steps are rejected for the employee token and require an
	// authenticated reviewer with the complete_manager_steps capability.
	ManagerOnly bool

	// Required steps gate session completion.
	Required bool
}

// ordered is the canonical progression. Order matters: a step cannot be
// submitted until every required step before it is complete.
var ordered = []Step{
	{ID: StepPersonalInfo, Name: "Personal Information", Required: true},
	{ID: StepI9Section1, Name: "I-9 Section 1", Required: true},
	{ID: StepDocumentUpload, Name: "Document Upload", Required: true},
	{ID: StepI9Section2, Name: "I-9 Section 2", ManagerOnly: true, Required: true},
	{ID: StepW4, Name: "W-4 Tax Withholding", Required: true},
	{ID: StepDirectDeposit, Name: "Direct Deposit", Required: true},
	{ID: StepHealthInsurance, Name: "Health Insurance", Required: true},
	{ID: StepPolicies, Name: "Company Policies", Required: true},
	{ID: StepFinalReview, Name: "Final Review", Required: true},
}

var supplemental = []Step{
	{ID: StepI9SupplementB, Name: "I-9 Supplement B", ManagerOnly: true},
}

func Steps() []Step {
	out := make([]Step, len(ordered))
	copy(out, ordered)
	return out
}

func StepByID(id StepID) (Step, bool) {
	for _, s := range ordered {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range supplemental {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// StepIndex returns the position of id in the ordered flow, or -1 for
// supplemental/unknown steps.
func StepIndex(id StepID) int {
	for i, s := range ordered {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func RequiredSteps() []Step {
	out := make([]Step, 0, len(ordered))
	for _, s := range ordered {
		if s.Required {
			out = append(out, s)
		}
	}
	return out
}

package user

// Capability names an operation a role may perform. Authorization decisions
// check the caller's role against one of these rather than branching on the
// role string at call sites.
type Capability string

const (
	CapReviewApplications   Capability = "review_applications"
	CapManageProperties     Capability = "manage_properties"
	CapManageManagers       Capability = "manage_managers"
	CapViewDashboard        Capability = "view_dashboard"
	CapCompleteManagerSteps Capability = "complete_manager_steps"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleHR: {
		CapReviewApplications:   {},
		CapManageProperties:     {},
		CapManageManagers:       {},
		CapViewDashboard:        {},
		CapCompleteManagerSteps: {},
	},
	RoleManager: {
		CapReviewApplications:   {},
		CapViewDashboard:        {},
		CapCompleteManagerSteps: {},
	},
}

func (r Role) Can(c Capability) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

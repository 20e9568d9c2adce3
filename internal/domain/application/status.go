package application

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusTalentPool Status = "talent_pool"
	StatusWithdrawn  Status = "withdrawn"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusTalentPool, StatusWithdrawn:
		return true
	}
	return false
}

// transitions holds the allowed review transitions. Approved and withdrawn
// are terminal; rejected and talent_pool can be reactivated back to pending.
var transitions = map[Status]map[Status]struct{}{
	StatusPending: {
		StatusApproved:   {},
		StatusRejected:   {},
		StatusTalentPool: {},
		StatusWithdrawn:  {},
	},
	StatusRejected: {
		StatusPending:    {},
		StatusTalentPool: {},
	},
	StatusTalentPool: {
		StatusPending: {},
	},
}

func (s Status) CanTransitionTo(next Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

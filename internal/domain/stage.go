package domain

// Stage represents where a device code login currently is.
type Stage string

const (
	StageAwaitingDeviceCode Stage = "awaiting_device_code"
	StageAwaitingUserAuth   Stage = "awaiting_user_auth"
	StageExchanging         Stage = "exchanging"
	StageDone               Stage = "done"
	StageFailed             Stage = "failed"
)

var nextStage = map[Stage]Stage{
	StageAwaitingDeviceCode: StageAwaitingUserAuth,
	StageAwaitingUserAuth:   StageExchanging,
	StageExchanging:         StageDone,
}

// Terminal reports whether no further transition is possible from s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// CanTransition reports whether moving from s to to is allowed.
// Every non-terminal stage may fail; otherwise stages only move forward by one.
func (s Stage) CanTransition(to Stage) bool {
	if s.Terminal() {
		return false
	}
	if to == StageFailed {
		return true
	}
	return nextStage[s] == to
}

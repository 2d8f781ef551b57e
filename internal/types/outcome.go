package types

import "fmt"

// ExecutionOutcome is how a hub execution ended.
type ExecutionOutcome string

const (
	Committed ExecutionOutcome = "committed"
	Rejected  ExecutionOutcome = "rejected"
	Failed    ExecutionOutcome = "failed"
)

func (o ExecutionOutcome) ToString() string {
	return string(o)
}

func FromStringToExecutionOutcome(s string) (ExecutionOutcome, error) {
	switch s {
	case "committed":
		return Committed, nil
	case "rejected":
		return Rejected, nil
	case "failed":
		return Failed, nil
	default:
		return "", fmt.Errorf("invalid execution outcome: %s", s)
	}
}

// TokenKind names the two liquid staking tokens in metric labels.
type TokenKind string

const (
	BLuna  TokenKind = "bluna"
	StLuna TokenKind = "stluna"
)

func (t TokenKind) ToString() string {
	return string(t)
}

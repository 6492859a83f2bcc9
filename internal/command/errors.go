package command

import (
	"fmt"
	"time"
)

// CooldownError reports an invocation inside the cooldown window. The
// dispatcher turns it into an informational ephemeral reply.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %.1fs", e.Remaining.Seconds())
}

// PermissionError reports that the invoker may not run the command here.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Reason
}

// NotFoundError reports a lookup miss for a named thing (city, timezone,
// channel, guild). Hint, when set, is appended to the user-facing message.
type NotFoundError struct {
	Kind string
	Name string
	Hint string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// TimeoutError reports that an external service exceeded its deadline.
type TimeoutError struct {
	Service string
}

func (e *TimeoutError) Error() string {
	return e.Service + " service timed out"
}

// ProviderError reports a non-success answer from an external service. The
// wrapped error carries provider detail for the log; users only see a
// generic message.
type ProviderError struct {
	Service string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Service, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

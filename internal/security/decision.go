package security

// Reason identifies which signal denied a request.
type Reason string

const (
	ReasonBot       Reason = "bot"
	ReasonShield    Reason = "shield"
	ReasonRateLimit Reason = "rate_limit"
)

// reasonPriority orders reasons for message selection when a denial has
// more than one cause: bot > shield > rateLimit.
var reasonPriority = []Reason{ReasonBot, ReasonShield, ReasonRateLimit}

// Decision is the per-request verdict of the abuse classifier. It is
// computed fresh for every request and never stored.
type Decision struct {
	Denied  bool
	Reasons map[Reason]struct{}
}

func allow() Decision {
	return Decision{}
}

func deny(reasons ...Reason) Decision {
	set := make(map[Reason]struct{}, len(reasons))
	for _, r := range reasons {
		set[r] = struct{}{}
	}
	return Decision{Denied: true, Reasons: set}
}

// merge folds another decision into this one.
func (d Decision) merge(other Decision) Decision {
	if !other.Denied {
		return d
	}
	if !d.Denied {
		return other
	}
	for r := range other.Reasons {
		d.Reasons[r] = struct{}{}
	}
	return d
}

// Top returns the highest-priority denial reason.
func (d Decision) Top() (Reason, bool) {
	if !d.Denied {
		return "", false
	}
	for _, r := range reasonPriority {
		if _, ok := d.Reasons[r]; ok {
			return r, true
		}
	}
	return "", false
}

// Has reports whether the decision carries the given reason.
func (d Decision) Has(reason Reason) bool {
	_, ok := d.Reasons[reason]
	return ok
}

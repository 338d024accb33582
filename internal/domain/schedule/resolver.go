package schedule

import "context"

// Rule is a weekday's operating window plus the slot enumeration step.
type Rule struct {
	StartTime   string
	EndTime     string
	SlotStepMin int
}

// Window is a [Start,End) sub-interval of a day.
type Window struct {
	Start string
	End   string
}

// Repository provides the schedule configuration. Nil results mean
// "no rule configured", which the resolver treats as fall-through.
type Repository interface {
	GetWorkRule(ctx context.Context, weekday int) (*Rule, error)
	GetMasterWorkRule(ctx context.Context, masterID uint, weekday int) (*Rule, error)
	ListBreaks(ctx context.Context, weekday int) ([]Window, error)
	ListMasterBreaks(ctx context.Context, masterID uint, weekday int) ([]Window, error)
	ListBlocksForDate(ctx context.Context, masterID uint, date string) ([]Window, error)
}

// Resolve returns the effective work rule and break list for a master on
// a weekday. A personal rule (only consulted when allowPersonal is set)
// fully supersedes the salon rule; a nil rule means day off. Personal
// breaks replace salon breaks wholesale when at least one exists: the
// fallback is a presence check, never a per-break merge.
func Resolve(
	ctx context.Context,
	repo Repository,
	masterID uint,
	allowPersonal bool,
	weekday int,
) (*Rule, []Window, error) {

	var rule *Rule
	var err error

	if allowPersonal {
		rule, err = repo.GetMasterWorkRule(ctx, masterID, weekday)
		if err != nil {
			return nil, nil, err
		}
	}
	if rule == nil {
		rule, err = repo.GetWorkRule(ctx, weekday)
		if err != nil {
			return nil, nil, err
		}
	}
	if rule == nil {
		return nil, nil, nil // day off
	}

	var breaks []Window
	if allowPersonal {
		breaks, err = repo.ListMasterBreaks(ctx, masterID, weekday)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(breaks) == 0 {
		breaks, err = repo.ListBreaks(ctx, weekday)
		if err != nil {
			return nil, nil, err
		}
	}

	return rule, breaks, nil
}

package dispute

type ResolutionType string

const (
	WorkerWins  ResolutionType = "worker_wins"
	PosterWins  ResolutionType = "poster_wins"
	SplitEvenly ResolutionType = "split_evenly"
	CustomSplit ResolutionType = "custom_split"
)

func (t ResolutionType) Valid() bool {
	switch t {
	case WorkerWins, PosterWins, SplitEvenly, CustomSplit:
		return true
	}
	return false
}

// DefaultPercentage is the worker's share implied by a resolution type.
// CustomSplit has none; the admin must supply it.
func DefaultPercentage(t ResolutionType) (int, bool) {
	switch t {
	case WorkerWins:
		return 100, true
	case PosterWins:
		return 0, true
	case SplitEvenly:
		return 50, true
	}
	return 0, false
}

// WorkerPercentage picks the share to persist for a resolution.
func WorkerPercentage(t ResolutionType, supplied *int) (int, error) {
	if !t.Valid() {
		return 0, ErrInvalidResolutionType
	}
	if t != CustomSplit {
		p, _ := DefaultPercentage(t)
		return p, nil
	}
	if supplied == nil || *supplied < 0 || *supplied > 100 {
		return 0, ErrInvalidPercentage
	}
	return *supplied, nil
}

package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusScheduled           Status = "scheduled"
	StatusInProgress          Status = "in_progress"
	StatusCompletedFromWorker Status = "completed_from_worker"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
	StatusDisputed            Status = "disputed"
)

// transitions lists every edge of the lifecycle. Edges touching Disputed are
// only taken by the dispute workflow.
var transitions = map[Status][]Status{
	StatusScheduled:           {StatusInProgress, StatusCancelled},
	StatusInProgress:          {StatusCompletedFromWorker, StatusCompleted, StatusCancelled},
	StatusCompletedFromWorker: {StatusCompleted, StatusCancelled},
	StatusCompleted:           {StatusDisputed},
	StatusDisputed:            {StatusCompleted},
	StatusCancelled:           {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStatus is the status every new booking starts in.
func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	switch current {
	case StatusCompleted, StatusCancelled:
		return ErrCannotCancel
	case StatusDisputed:
		return ErrCannotCancelDisputed
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusScheduled {
		return ErrCannotStart
	}
	return nil
}

func CanCompleteByWorker(current Status) error {
	if current != StatusInProgress {
		return ErrNotInProgress
	}
	return nil
}

func CanCompleteByPoster(current Status) error {
	if !CanTransition(current, StatusCompleted) || current == StatusDisputed {
		return ErrCannotConfirm
	}
	return nil
}

func CanReschedule(current Status) error {
	switch current {
	case StatusScheduled, StatusInProgress:
		return nil
	}
	return ErrCannotReschedule
}

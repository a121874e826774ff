package availability

import (
	"time"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/model"
)

const (
	textAllDay     = "available all day"
	textUnknown    = "unknown"
	textNoUpcoming = "no upcoming window"
)

func allDay() model.Countdown {
	return model.Countdown{State: model.StateAllDay, Remaining: model.Forever, Text: textAllDay}
}

func unknown() model.Countdown {
	return model.Countdown{State: model.StateUnknown, Remaining: model.Forever, Text: textUnknown}
}

func noUpcoming() model.Countdown {
	return model.Countdown{State: model.StateNoUpcoming, Remaining: model.Forever, Text: textNoUpcoming}
}

// active never reports less than 1ms left, so a window never looks expired
// while it is still open.
func active(leftMs int64, progress float64) model.Countdown {
	if leftMs < 1 {
		leftMs = 1
	}
	return model.Countdown{
		State:     model.StateActive,
		Remaining: time.Duration(leftMs) * time.Millisecond,
		Text:      "remaining " + eorzea.FormatDuration(leftMs),
		Progress:  progress,
	}
}

func pending(waitMs int64) model.Countdown {
	if waitMs < 1 {
		waitMs = 1
	}
	return model.Countdown{
		State:     model.StatePending,
		Remaining: time.Duration(waitMs) * time.Millisecond,
		Text:      eorzea.FormatDuration(waitMs) + " until available",
	}
}

// percent returns elapsed/total as a percentage clamped to [0,100].
func percent(elapsed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

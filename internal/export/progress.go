// Package export renders contact sets into VCF, CSV and XLSX. All three
// encoders share one invariant: a phone number is never allowed to surface as
// a numeric type in the consuming application, since spreadsheet tools coerce
// long digit strings into scientific notation.
package export

// Phase marks where an export currently is.
type Phase string

const (
	PhaseReading    Phase = "reading"
	PhaseProcessing Phase = "processing"
	PhaseWriting    Phase = "writing"
	PhaseDone       Phase = "done"
)

// Progress is one progress emission; Current/Total count contacts.
type Progress struct {
	Phase   Phase
	Current int
	Total   int
}

type ProgressFunc func(Progress)

// Options tunes an encoder run. OnProgress, when set, is invoked at phase
// transitions and every Interval rows while processing, never per row.
type Options struct {
	OnProgress ProgressFunc
	Interval   int
}

func (o Options) interval() int {
	if o.Interval <= 0 {
		return 100
	}
	return o.Interval
}

func (o Options) emit(phase Phase, current, total int) {
	if o.OnProgress != nil {
		o.OnProgress(Progress{Phase: phase, Current: current, Total: total})
	}
}

func (o Options) emitRow(i, total int) {
	if o.OnProgress != nil && (i+1)%o.interval() == 0 {
		o.OnProgress(Progress{Phase: PhaseProcessing, Current: i + 1, Total: total})
	}
}

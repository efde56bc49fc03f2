package training

// ProgressListener receives lifecycle and progress notifications from a
// Trainer's Execute run. index distinguishes concurrent progress streams
// when a caller drives more than one trainer through the same listener; a
// single Trainer always reports index 0.
type ProgressListener interface {
	Start()
	End()
	Message(index int, text string)
	Progress(index, increment, total int)
	Reset(index int)
	State(s State)
	Indeterminate(index int, indeterminate bool)
}

// NopProgressListener discards every notification. Used as the Trainer's
// default so callers that don't care about progress needn't supply one.
type NopProgressListener struct{}

// Start implements ProgressListener.
func (NopProgressListener) Start() {}

// End implements ProgressListener.
func (NopProgressListener) End() {}

// Message implements ProgressListener.
func (NopProgressListener) Message(int, string) {}

// Progress implements ProgressListener.
func (NopProgressListener) Progress(int, int, int) {}

// Reset implements ProgressListener.
func (NopProgressListener) Reset(int) {}

// State implements ProgressListener.
func (NopProgressListener) State(State) {}

// Indeterminate implements ProgressListener.
func (NopProgressListener) Indeterminate(int, bool) {}

var _ ProgressListener = NopProgressListener{}

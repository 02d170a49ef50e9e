package recorder

// NoopRecorder is a no-op implementation used when recording is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAssessment(_ *AssessmentEvent) error { return nil }
func (n *NoopRecorder) RecordSync(_ *SyncEvent) error             { return nil }
func (n *NoopRecorder) Close() error                              { return nil }

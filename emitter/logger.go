package emitter

// Logger receives construction and cache events. Traversal never logs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}

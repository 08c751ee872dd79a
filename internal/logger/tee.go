package logger

// Tee forwards every message to each of its loggers in order.
type Tee []Logger

// NewTee creates a Tee, dropping nil loggers.
func NewTee(loggers ...Logger) Tee {
	tee := make(Tee, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			tee = append(tee, l)
		}
	}
	return tee
}

// LogTrace implements Logger.
func (t Tee) LogTrace(message string) {
	for _, l := range t {
		l.LogTrace(message)
	}
}

// LogDebug implements Logger.
func (t Tee) LogDebug(message string) {
	for _, l := range t {
		l.LogDebug(message)
	}
}

// LogInfo implements Logger.
func (t Tee) LogInfo(message string) {
	for _, l := range t {
		l.LogInfo(message)
	}
}

// LogWarn implements Logger.
func (t Tee) LogWarn(message string) {
	for _, l := range t {
		l.LogWarn(message)
	}
}

// LogError implements Logger.
func (t Tee) LogError(message string) {
	for _, l := range t {
		l.LogError(message)
	}
}

package frontier

import (
	"k8s.io/klog/v2"
)

// Diagnostics receives non-fatal conditions raised during a search
type Diagnostics interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

// KlogDiagnostics forwards diagnostics to klog. Info messages are emitted at verbosity 2.
type KlogDiagnostics struct{}

func (KlogDiagnostics) Infof(format string, args ...any) {
	klog.V(2).Infof(format, args...)
}

func (KlogDiagnostics) Warningf(format string, args ...any) {
	klog.Warningf(format, args...)
}

func (KlogDiagnostics) Errorf(format string, args ...any) {
	klog.Errorf(format, args...)
}

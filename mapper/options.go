package mapper

import (
	"go.uber.org/zap"

	"universal-mapper/convert"
	"universal-mapper/diagnostic"
	"universal-mapper/internal/common"
	"universal-mapper/remap"
)

// Policy decides what happens with a field that cannot be mapped.
type Policy int

const (
	// Throw aborts the mapping call with a MappingError.
	Throw Policy = iota
	// Skip leaves the target field at its zero value and carries on.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Throw:
		return "throw"
	case Skip:
		return "skip"
	default:
		return common.UnknownStr
	}
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithRegistry sets the conversion registry. Defaults to convert.Default().
func WithRegistry(registry *convert.Registry) Option {
	return func(m *Mapper) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithLogger sets the logger used for skipped and dropped fields. A nil logger
// disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mapper) {
		if logger == nil {
			logger = zap.NewNop()
		}
		m.log = logger
	}
}

// WithNameMatcher sets how source fields find their target field when no remap
// rule applies. Defaults to ExactNames.
func WithNameMatcher(matcher Matcher) Option {
	return func(m *Mapper) {
		if matcher != nil {
			m.matcher = matcher
		}
	}
}

// CallOption configures a single mapping call.
type CallOption func(*callOptions)

type callOptions struct {
	remap  *remap.Config
	policy Policy
	diags  *diagnostic.Diagnostics
}

// WithRemap applies the rules of cfg to every type pair met during the call.
func WithRemap(cfg *remap.Config) CallOption {
	return func(o *callOptions) {
		o.remap = cfg
	}
}

// WithPolicy sets the conflict policy. Defaults to Throw.
func WithPolicy(policy Policy) CallOption {
	return func(o *callOptions) {
		o.policy = policy
	}
}

// WithDiagnostics collects a warning for every skipped field and an info for
// every dropped one.
func WithDiagnostics(diags *diagnostic.Diagnostics) CallOption {
	return func(o *callOptions) {
		o.diags = diags
	}
}

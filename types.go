package settings

import (
	"time"

	"github.com/goliatone/go-settings/pkg/activity"
)

// RuleContext carries the store snapshot an expression is evaluated against.
type RuleContext struct {
	Values   map[string]any
	Explicit map[string]bool
	Frozen   bool
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Values == nil {
		ctx.Values = map[string]any{}
	}
	if ctx.Explicit == nil {
		ctx.Explicit = map[string]bool{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) isSet(name string) bool {
	return ctx.Explicit[name]
}

// Evaluator executes constraint expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a Store on construction.
type Option func(*storeConfig)

type storeConfig struct {
	evaluator     Evaluator
	programCache  ProgramCache
	functions     *FunctionRegistry
	ruleLogger    RuleLogger
	activityHooks activity.Hooks
}

func applyOptions(opts []Option) storeConfig {
	cfg := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator configures the expression engine used for constraint rules.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *storeConfig) {
		cfg.evaluator = e
	}
}

// WithActivityHooks attaches lifecycle hooks notified on successful
// mutations. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *storeConfig) {
		cfg.activityHooks = normalized
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}

func (s *Store) evaluator() Evaluator {
	return s.cfg.evaluator
}

func (s *Store) withEvaluator(e Evaluator) {
	s.cfg.evaluator = e
}

func (s *Store) programCache() ProgramCache {
	return s.cfg.programCache
}

func (s *Store) functionRegistry() *FunctionRegistry {
	return s.cfg.functions
}

func (s *Store) ruleLogger() RuleLogger {
	if s.cfg.ruleLogger != nil {
		return s.cfg.ruleLogger
	}
	return noopRuleLogger{}
}

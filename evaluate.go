package settings

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("settings: evaluator not configured")

type constraintRule struct {
	name string
	expr string
}

// AddRule registers a named cross-option constraint. All registered rules
// run against the final snapshot when Freeze is called; failures are
// reported, not thrown, so one bad rule does not abort the freeze. Adding a
// rule is a mutation and fails once frozen.
func (s *Store) AddRule(name, expr string) error {
	if s.Frozen() {
		return optionErr("addRule", name, ErrFrozen)
	}
	if name == "" {
		return fmt.Errorf("settings: rule name must not be empty")
	}
	if expr == "" {
		return fmt.Errorf("settings: rule %q: expression must not be empty", name)
	}
	s.rules = append(s.rules, constraintRule{name: name, expr: expr})
	return nil
}

// Rules returns the names of registered constraint rules in registration
// order.
func (s *Store) Rules() []string {
	names := make([]string, len(s.rules))
	for i, rule := range s.rules {
		names[i] = rule.name
	}
	return names
}

// Evaluate executes expr against the current store snapshot using the
// configured evaluator, defaulting to the expr engine.
func (s *Store) Evaluate(expr string) (any, error) {
	return s.evaluateRule("", expr)
}

// Check evaluates expr and reduces the result to a boolean verdict.
// Non-boolean results fail with an error rather than guessing truthiness.
func (s *Store) Check(expr string) (bool, error) {
	value, err := s.Evaluate(expr)
	if err != nil {
		return false, err
	}
	verdict, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("settings: expression %q returned %T, want bool", expr, value)
	}
	return verdict, nil
}

func (s *Store) evaluateRule(rule, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ctx := s.ruleContext()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError("", expr, rule, evalErr)
	s.ruleLogger().LogRule(RuleLogEvent{
		Engine:   engine,
		Expr:     expr,
		Rule:     rule,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

// runRules evaluates every registered constraint against the final snapshot
// and reports violations to the registry's reporter.
func (s *Store) runRules() {
	reporter := s.reporter()
	for _, rule := range s.rules {
		value, err := s.evaluateRule(rule.name, rule.expr)
		if err != nil {
			reporter.ReportError(fmt.Sprintf("settings: rule %q: %v", rule.name, err))
			continue
		}
		verdict, ok := value.(bool)
		if !ok {
			reporter.ReportError(fmt.Sprintf("settings: rule %q returned %T, want bool", rule.name, value))
			continue
		}
		if !verdict {
			reporter.ReportError(fmt.Sprintf("settings: rule %q failed", rule.name))
		}
	}
}

func (s *Store) ruleContext() RuleContext {
	return RuleContext{
		Values:   s.RawValues(),
		Explicit: s.ExplicitNames(),
		Frozen:   s.Frozen(),
	}.withDefaultNow().withDefaultMaps()
}

func (s *Store) resolveEvaluator() (Evaluator, error) {
	evaluator := s.evaluator()
	if evaluator != nil {
		return evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := s.programCache(); cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := s.functionRegistry(); registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	s.withEvaluator(defaultEvaluator)
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*settings.exprEvaluator":
		return "expr"
	case "*settings.celEvaluator":
		return "cel"
	case "*settings.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}

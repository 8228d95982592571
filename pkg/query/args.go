package query

import (
	"context"

	"github.com/vango-dev/vquery/pkg/lifecycle"
)

// Options is the single-object call shape.
type Options struct {
	QueryKey any
	QueryFn  QueryFunc
	Config   *Config
}

// NormalizeArgs reshapes the accepted call shapes into key, config and any
// trailing arguments:
//
//	(Options, rest...)
//	(key, Config, rest...)
//	(key, fn, Config, rest...)
//
// The function, wherever it came from, ends up in the returned config's
// QueryFn; an explicit fn argument wins over Config.QueryFn. Unrecognised
// values in the fn or config slot are ignored. NormalizeArgs never fails.
func NormalizeArgs(args ...any) (key any, cfg Config, rest []any) {
	var fn QueryFunc
	var cfgArg any

	if opts, ok := asOptions(arg(args, 0)); ok {
		key, fn = opts.QueryKey, opts.QueryFn
		if opts.Config != nil {
			cfgArg = *opts.Config
		}
		rest = tail(args, 1)
	} else if _, ok := asConfig(arg(args, 1)); ok {
		key, cfgArg = arg(args, 0), arg(args, 1)
		rest = tail(args, 2)
	} else {
		key = arg(args, 0)
		fn, _ = asFunc(arg(args, 1))
		cfgArg = arg(args, 2)
		rest = tail(args, 3)
	}

	cfg, _ = asConfig(cfgArg)
	if fn == nil {
		fn = cfg.QueryFn
	}
	if fn != nil {
		cfg.QueryFn = fn
	}
	return key, cfg, rest
}

// UseArgs normalizes args and merges the call-site config over the defaults
// provided by the nearest ConfigContext on scope.
func UseArgs(scope *lifecycle.Scope, args ...any) (key any, cfg Config, rest []any) {
	key, cfg, rest = NormalizeArgs(args...)
	return key, ConfigFrom(scope).QueryConfig(cfg), rest
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func tail(args []any, from int) []any {
	if from >= len(args) {
		return nil
	}
	return args[from:]
}

func asOptions(v any) (Options, bool) {
	switch o := v.(type) {
	case Options:
		return o, true
	case *Options:
		if o != nil {
			return *o, true
		}
	}
	return Options{}, false
}

func asConfig(v any) (Config, bool) {
	switch c := v.(type) {
	case Config:
		return c, true
	case *Config:
		if c != nil {
			return *c, true
		}
	}
	return Config{}, false
}

func asFunc(v any) (QueryFunc, bool) {
	switch f := v.(type) {
	case QueryFunc:
		return f, f != nil
	case func(context.Context, any) (any, error):
		return f, f != nil
	case func(context.Context) (any, error):
		if f == nil {
			return nil, false
		}
		return func(ctx context.Context, _ any) (any, error) { return f(ctx) }, true
	}
	return nil, false
}

package core

import (
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("github.com/peggy-bridge/orchestrator/core")
)

// RelayerWrapper is implemented by decorators of relay operations
type RelayerWrapper interface {
	// UnwrapRelayer returns the decorated relay operation
	UnwrapRelayer() any
}

// withPackage adds the package name of the relayer `v`, looking through decorators
func withPackage(v any) trace.SpanStartOption {
	return trace.WithAttributes(AttributeKeyPackage.String(getPackageName(unwrapRelayer(v))))
}

func unwrapRelayer(v any) any {
	for {
		w, ok := v.(RelayerWrapper)
		if !ok {
			return v
		}
		v = w.UnwrapRelayer()
	}
}

func getPackageName(v any) string {
	if v == nil {
		return ""
	}

	rt := reflect.TypeOf(v)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt.PkgPath()
}

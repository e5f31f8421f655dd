package scripting

import (
	"context"

	"github.com/dop251/goja"
)

type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	vm := goja.New()
	return &GojaEngine{vm: vm}
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

func (e *GojaEngine) Set(name string, value interface{}) error {
	return e.vm.Set(name, value)
}

func (e *GojaEngine) RegisterTable(dom TableDOM) error {
	if err := e.vm.Set("cell", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		v := dom.Cell(int(call.Arguments[0].ToInteger()), int(call.Arguments[1].ToInteger()))
		if v == nil {
			return goja.Null()
		}
		return e.vm.ToValue(v)
	}); err != nil {
		return err
	}
	if err := e.vm.Set("rows", func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(dom.Rows())
	}); err != nil {
		return err
	}
	if err := e.vm.Set("columns", func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(dom.Columns())
	}); err != nil {
		return err
	}
	return e.vm.Set("log", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		dom.Log(msg)
		return goja.Undefined()
	})
}

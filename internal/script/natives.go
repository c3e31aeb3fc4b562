package script

import (
	"errors"

	"github.com/dop251/goja"
)

var errAssetMissing = errors.New("File doesn't exist")

// floatArg returns argument i as float32, or 0 when it was not passed.
func floatArg(call goja.FunctionCall, i int) float32 {
	if i >= len(call.Arguments) {
		return 0
	}
	v := call.Arguments[i]
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return 0
	}
	return float32(v.ToFloat())
}

func stringArg(call goja.FunctionCall, i int) string {
	if i >= len(call.Arguments) {
		return ""
	}
	return call.Arguments[i].String()
}

func (r *Runtime) assetReadSync(call goja.FunctionCall) goja.Value {
	data, err := r.bridge.ReadAsset(stringArg(call, 0))
	if err != nil {
		r.logger.Debug("asset read failed", "name", stringArg(call, 0), "error", err)
		r.throw(errAssetMissing)
	}
	return r.vm.ToValue(r.vm.NewArrayBuffer(data))
}

func (r *Runtime) cacheTexture(call goja.FunctionCall) goja.Value {
	if err := r.bridge.CacheTexture(stringArg(call, 0), stringArg(call, 1)); err != nil {
		r.throw(err)
	}
	return goja.Undefined()
}

func (r *Runtime) render(call goja.FunctionCall) goja.Value {
	r.bridge.Render(stringArg(call, 0), floatArg(call, 1), floatArg(call, 2), floatArg(call, 3))
	return goja.Undefined()
}

func (r *Runtime) setCamera(call goja.FunctionCall) goja.Value {
	r.bridge.SetCamera(floatArg(call, 0), floatArg(call, 1), floatArg(call, 2))
	return goja.Undefined()
}

func (r *Runtime) getScreenDimensions(goja.FunctionCall) goja.Value {
	w, h := r.bridge.ScreenDimensions()
	obj := r.vm.NewObject()
	_ = obj.Set("width", w)
	_ = obj.Set("height", h)
	return obj
}

func (r *Runtime) clearScreen(call goja.FunctionCall) goja.Value {
	r.bridge.ClearScreen(floatArg(call, 0), floatArg(call, 1), floatArg(call, 2))
	return goja.Undefined()
}

func (r *Runtime) unproject(call goja.FunctionCall) goja.Value {
	x, y := r.bridge.Unproject(int(floatArg(call, 0)), int(floatArg(call, 1)))
	return r.vm.NewArray(float64(x), float64(y))
}

func (r *Runtime) cacheSound(call goja.FunctionCall) goja.Value {
	tag, path := stringArg(call, 0), stringArg(call, 1)
	if err := r.bridge.CacheSound(tag, path); err != nil {
		r.throw(err)
	}
	return goja.Undefined()
}

func (r *Runtime) playSound(goja.FunctionCall) goja.Value {
	r.bridge.PlaySound()
	return goja.Undefined()
}

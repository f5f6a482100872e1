//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cwbudde/algo-glass/config"
	"github.com/cwbudde/algo-glass/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// init(sampleRate, tier?, halftone?)
	api.Set("init", export(func(args []js.Value) any {
		if engine != nil {
			_ = engine.Dispose()
			engine = nil
		}

		sr := 48000.0
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			sr = args[0].Float()
		}
		cfg := config.Default()
		if len(args) > 1 && args[1].Type() == js.TypeNumber {
			cfg.Tier = args[1].Int()
		}
		if len(args) > 2 && args[2].Type() == js.TypeBoolean {
			cfg.Effects.Halftone = args[2].Bool()
		}

		e, err := webdemo.NewEngine(sr, cfg)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	// tick(dt) returns the frame output as a JSON string.
	api.Set("tick", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		data, err := json.Marshal(engine.Tick(args[0].Float()))
		if err != nil {
			return js.Null()
		}
		return string(data)
	}))

	api.Set("trigger", export(func(args []js.Value) any {
		if engine == nil {
			return false
		}
		return engine.Trigger()
	}))

	api.Set("setScroll", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetScroll(args[0].Float())
		return js.Null()
	}))

	api.Set("setPlaying", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetPlaying(args[0].Bool())
		return js.Null()
	}))

	api.Set("setHover", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetHover(args[0].Bool())
		return js.Null()
	}))

	// pushSamples(Float32Array)
	api.Set("pushSamples", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		input := args[0]
		samples := make([]float64, input.Length())
		for i := range samples {
			samples[i] = input.Index(i).Float()
		}
		if err := engine.PushSamples(samples); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	// pushMagnitudes(Uint8Array) takes getByteFrequencyData output as is.
	api.Set("pushMagnitudes", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		input := args[0]
		mags := make([]uint8, input.Length())
		js.CopyBytesToGo(mags, input)
		engine.PushMagnitudes(mags)
		return js.Null()
	}))

	api.Set("resize", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		engine.Resize(args[0].Float(), args[1].Float())
		return js.Null()
	}))

	api.Set("setHalftone", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.SetHalftone(args[0].Bool()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	// positions() returns {positions, normals} as Float32Arrays, or null when
	// the buffer is unchanged since the last call.
	api.Set("positions", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		pos, normals, ok := engine.Positions()
		if !ok {
			return js.Null()
		}
		out := js.Global().Get("Object").New()
		out.Set("positions", float32Array(pos))
		out.Set("normals", float32Array(normals))
		return out
	}))

	api.Set("indices", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Uint32Array").New(0)
		}
		idx := engine.Indices()
		arr := js.Global().Get("Uint32Array").New(len(idx))
		for i, v := range idx {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	// uniforms() returns the uniform entries as a JSON string.
	api.Set("uniforms", export(func(args []js.Value) any {
		if engine == nil {
			return "[]"
		}
		data, err := json.Marshal(engine.Uniforms())
		if err != nil {
			return "[]"
		}
		return string(data)
	}))

	api.Set("dispose", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		err := engine.Dispose()
		engine = nil
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	js.Global().Set("AlgoGlass", api)
	select {}
}

func float32Array(v []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(v))
	for i := range v {
		arr.SetIndex(i, v[i])
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

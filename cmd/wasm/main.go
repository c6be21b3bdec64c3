//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/vizkit/vizkit/backend-go/internal/chart"
)

var eng *chart.Engine

// eventCallback is the JS function the engine forwards its events to.
var eventCallback js.Value = js.Undefined()

func main() {
	eng = chart.NewEngine(emitEvent)

	// Create the engine API object
	vizkitEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	vizkitEngine.Set("configure", js.FuncOf(configure))
	vizkitEngine.Set("setData", js.FuncOf(setData))
	vizkitEngine.Set("loadSampleChart", js.FuncOf(loadSampleChart))
	vizkitEngine.Set("resize", js.FuncOf(resize))
	vizkitEngine.Set("setProgress", js.FuncOf(setProgress))
	vizkitEngine.Set("handlePointer", js.FuncOf(handlePointer))
	vizkitEngine.Set("handleKey", js.FuncOf(handleKey))
	vizkitEngine.Set("toggleLegendEntry", js.FuncOf(toggleLegendEntry))
	vizkitEngine.Set("setEventListener", js.FuncOf(setEventListener))

	// --- Queries (frontend ← backend) ---
	vizkitEngine.Set("render", js.FuncOf(render))
	vizkitEngine.Set("hitTest", js.FuncOf(hitTest))
	vizkitEngine.Set("getLegend", js.FuncOf(getLegend))
	vizkitEngine.Set("getSelection", js.FuncOf(getSelection))
	vizkitEngine.Set("getTooltip", js.FuncOf(getTooltip))
	vizkitEngine.Set("getProgress", js.FuncOf(getProgress))

	// Register on global scope
	js.Global().Set("vizkitEngine", vizkitEngine)

	// Signal that WASM is ready
	js.Global().Set("vizkitWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func emitEvent(ev chart.Event) {
	if eventCallback.IsUndefined() {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	eventCallback.Invoke(string(data))
}

// --- Command Handlers ---

func configure(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "configure(optionsJSON, width, height)"})
	}

	optionsJSON := args[0].String()
	width := args[1].Float()
	height := args[2].Float()
	if err := eng.Configure([]byte(optionsJSON), width, height); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setData(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing data JSON"})
	}

	if err := eng.SetData(json.RawMessage(args[0].String())); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleChart(this js.Value, args []js.Value) interface{} {
	width, height := 800.0, 450.0
	if len(args) >= 2 {
		width = args[0].Float()
		height = args[1].Float()
	}

	if err := eng.Configure(chart.SampleOptionsJSON(), width, height); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	if err := eng.Resize(args[0].Float(), args[1].Float()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setProgress(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetProgress(args[0].Float())
	return nil
}

func handlePointer(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	ev := chart.PointerEvent{
		Type: args[0].String(),
		X:    args[1].Float(),
		Y:    args[2].Float(),
	}
	if len(args) >= 4 {
		ev.CtrlOrMeta = args[3].Truthy()
	}
	eng.HandlePointer(ev)
	return nil
}

func handleKey(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.HandleKey(args[0].String())
	return nil
}

func toggleLegendEntry(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.ToggleLegendEntry(args[0].Int()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setEventListener(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		eventCallback = js.Undefined()
		return nil
	}
	eventCallback = args[0]
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.Null()
	}
	desc := eng.HitTest(args[0].Float(), args[1].Float())
	if desc == nil {
		return js.Null()
	}
	return js.ValueOf(marshalString(desc))
}

func getLegend(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(marshalString(eng.Legend()))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(marshalString(eng.SelectedKeys()))
}

func getTooltip(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(marshalString(eng.Tooltip()))
}

func getProgress(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Progress())
}

func marshalString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

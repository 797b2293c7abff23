//go:build js && wasm

// Browser bindings for the LED command set, for a WebSerial front end that
// opens the port itself and only needs the bytes to send and check.
package main

import (
	"encoding/hex"
	"syscall/js"

	"usbled/protocol"
)

func main() {
	js.Global().Set("usbledWasm", js.ValueOf(map[string]interface{}{
		"encodeLed":   js.FuncOf(encodeLedWrapper),
		"encodeProbe": js.FuncOf(encodeProbeWrapper),
		"isProbeEcho": js.FuncOf(isProbeEchoWrapper),
		"decode":      js.FuncOf(decodeWrapper),
		"version":     protocol.Version,
	}))

	// Keep the program running
	select {}
}

// encodeLedWrapper returns the payload for an LED state
// Args: on (bool), encoding ("byte" | "text", optional)
// Returns: hex string, or {error}
func encodeLedWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("encodeLed requires 1 argument")
	}

	enc := protocol.EncodingByte
	if len(args) > 1 && args[1].Type() == js.TypeString {
		parsed, err := protocol.ParseEncoding(args[1].String())
		if err != nil {
			return errorResult(err.Error())
		}
		enc = parsed
	}

	return hex.EncodeToString(protocol.EncodeLed(args[0].Truthy(), enc))
}

// encodeProbeWrapper returns the probe payload as hex
func encodeProbeWrapper(this js.Value, args []js.Value) interface{} {
	return hex.EncodeToString(protocol.EncodeProbe())
}

// isProbeEchoWrapper checks a received hex string for the probe echo
// Args: hex string
// Returns: bool
func isProbeEchoWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil || len(data) == 0 {
		return false
	}
	return data[0] == protocol.ProbeEcho
}

// decodeWrapper decodes a hex byte stream into command names
// Args: hex string
// Returns: array of strings, or {error}
func decodeWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("decode requires 1 argument")
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return errorResult("invalid hex: " + err.Error())
	}

	cmds := protocol.NewDecoder().Decode(data)
	names := make([]interface{}, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.String()
	}
	return names
}

func errorResult(msg string) interface{} {
	return map[string]interface{}{"error": msg}
}

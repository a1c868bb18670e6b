/*
Copyright 2024 The Nuclio Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bridge implements the line-oriented request/response loop: one
// JSON object per input line, one JSON object per output line, strictly
// alternating. A request either carries a control command ("cmd") or names a
// module and function ("m"/"f") with optional positional ("a") and keyword
// ("k") arguments; the response carries exactly one of "ok" or "error".
package bridge

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	goruntime "runtime"

	"github.com/nuclio/portbridge/pkg/bridge/module"
	"github.com/nuclio/portbridge/pkg/bridge/wire"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
	"github.com/rs/xid"
)

// Bridge reads requests line by line, dispatches them through the module
// registry and writes one response line per request. It is strictly
// sequential - a slow invocation stalls the loop for its duration, by
// design. Liveness is the supervisor's problem.
type Bridge struct {
	logger  logger.Logger
	codec   *wire.Codec
	modules *module.Registry
	reader  *bufio.Reader
	writer  *bufio.Writer
}

// NewBridge returns a bridge over the given streams. Responses are flushed
// to the writer after every line
func NewBridge(parentLogger logger.Logger,
	codec *wire.Codec,
	modules *module.Registry,
	reader io.Reader,
	writer io.Writer) *Bridge {

	return &Bridge{
		logger:  parentLogger.GetChild("bridge"),
		codec:   codec,
		modules: modules,
		reader:  bufio.NewReader(reader),
		writer:  bufio.NewWriter(writer),
	}
}

// Run emits the readiness line and then processes requests until the input
// stream ends. Only unrecoverable transport failure returns an error -
// request-level failures become response lines
func (b *Bridge) Run() error {
	capabilities := b.codec.Capabilities()

	b.logger.InfoWith("Bridge starting",
		"modules", b.modules.GetNames(),
		"arrays", capabilities.Arrays,
		"frames", capabilities.Frames)

	if err := b.writeLine(map[string]interface{}{
		"ready":  true,
		"numpy":  capabilities.Arrays,
		"pandas": capabilities.Frames,
	}); err != nil {
		return errors.Wrap(err, "Failed to write readiness line")
	}

	for {
		line, err := b.reader.ReadBytes('\n')

		// a final unterminated line is still a request
		if len(bytes.TrimSpace(line)) != 0 {
			if writeErr := b.writeResponse(b.handleLine(bytes.TrimSpace(line))); writeErr != nil {
				return writeErr
			}
		}

		if err == io.EOF {
			b.logger.Info("Input stream ended")
			return nil
		}

		if err != nil {
			return errors.Wrap(err, "Failed to read request line")
		}
	}
}

// handleLine turns one non-empty request line into one response. It never
// panics and never returns more or less than one response
func (b *Bridge) handleLine(line []byte) map[string]interface{} {
	var envelope map[string]interface{}
	if err := json.Unmarshal(line, &envelope); err != nil {
		return errorResponse("Invalid JSON: %s", err)
	}

	// control commands bypass dispatch entirely; an unrecognized command
	// falls through to regular envelope handling
	if command, ok := envelope["cmd"].(string); ok {
		if response, handled := b.handleCommand(command); handled {
			return response
		}
	}

	moduleName, _ := envelope["m"].(string)
	functionName, _ := envelope["f"].(string)
	if moduleName == "" || functionName == "" {
		return errorResponse("missing m or f")
	}

	requestID := xid.New().String()
	b.logger.DebugWith("Dispatching request",
		"requestID", requestID,
		"module", moduleName,
		"function", functionName)

	args, kwargs, err := b.decodeArguments(envelope)
	if err != nil {

		// argument decoding happens lazily, right before the call, so codec
		// failures are invocation-time failures
		return errorResponse("Bridge error: %s", err.Error())
	}

	moduleInstance, err := b.modules.Get(moduleName)
	if err != nil {
		return errorResponse("Module not found: %s - %s", moduleName, err.Error())
	}

	function, err := moduleInstance.Function(functionName)
	if err != nil {
		return errorResponse("Function not found: %s in %s - %s", functionName, moduleName, err.Error())
	}

	result, err := b.invoke(function, args, kwargs)
	if err != nil {
		b.logger.WarnWith("Invocation failed",
			"requestID", requestID,
			"err", err.Error())

		switch typedErr := err.(type) {
		case *module.TypeError:
			return errorResponse("Type error: %s", typedErr.Error())
		case *module.ValueError:
			return errorResponse("Value error: %s", typedErr.Error())
		default:
			return errorResponse("%s", err.Error())
		}
	}

	return map[string]interface{}{"ok": b.codec.Encode(result)}
}

func (b *Bridge) handleCommand(command string) (map[string]interface{}, bool) {
	capabilities := b.codec.Capabilities()

	switch command {
	case "ping":
		return map[string]interface{}{"ok": "pong"}, true

	case "health":
		return map[string]interface{}{
			"ok": map[string]interface{}{
				"ok":              true,
				"numpy":           capabilities.Arrays,
				"pandas":          capabilities.Frames,
				"runtime_version": goruntime.Version(),
			},
		}, true
	}

	return nil, false
}

func (b *Bridge) decodeArguments(envelope map[string]interface{}) ([]interface{}, map[string]interface{}, error) {
	var args []interface{}
	var kwargs map[string]interface{}

	if rawArgs, found := envelope["a"]; found && rawArgs != nil {
		argList, ok := rawArgs.([]interface{})
		if !ok {
			return nil, nil, errors.Errorf("Argument list must be a sequence, got %T", rawArgs)
		}

		decodedArgs, err := b.codec.Decode(argList)
		if err != nil {
			return nil, nil, err
		}

		args, ok = decodedArgs.([]interface{})
		if !ok {
			return nil, nil, errors.Errorf("Argument list decoded to %T, expected a sequence", decodedArgs)
		}
	}

	if rawKwargs, found := envelope["k"]; found && rawKwargs != nil {
		kwargMap, ok := rawKwargs.(map[string]interface{})
		if !ok {
			return nil, nil, errors.Errorf("Keyword arguments must be a mapping, got %T", rawKwargs)
		}

		decodedKwargs, err := b.codec.Decode(kwargMap)
		if err != nil {
			return nil, nil, err
		}

		// a marker key turns the whole mapping into a tagged value (bytes,
		// array, frame), which cannot serve as keyword arguments
		kwargs, ok = decodedKwargs.(map[string]interface{})
		if !ok {
			return nil, nil, errors.Errorf("Keyword arguments decoded to %T, expected a mapping", decodedKwargs)
		}
	}

	return args, kwargs, nil
}

// invoke calls the function, converting panics into errors. The keyword
// mapping is passed only when non-empty so that positional-only functions
// stay callable with zero keyword arguments
func (b *Bridge) invoke(function module.Function,
	args []interface{},
	kwargs map[string]interface{}) (result interface{}, err error) {

	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.Errorf("panic: %v", recovered)
		}
	}()

	if len(kwargs) == 0 {
		kwargs = nil
	}

	return function.Call(args, kwargs)
}

// writeResponse emits exactly one line for the response. A value that the
// final JSON marshal rejects (e.g. a NaN float) degrades to an error
// response rather than a missing line
func (b *Bridge) writeResponse(response map[string]interface{}) error {
	if err := b.writeLine(response); err != nil {
		if _, isErrorResponse := response["error"]; isErrorResponse {
			return errors.Wrap(err, "Failed to write error response")
		}

		return b.writeLine(errorResponse("Bridge error: %s", err.Error()))
	}

	return nil
}

func (b *Bridge) writeLine(value map[string]interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if _, err := b.writer.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "Failed to write response line")
	}

	// each response must be observable before the next request is read
	return b.writer.Flush()
}

func errorResponse(format string, args ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"error": fmt.Sprintf(format, args...),
	}
}

//go:build test_unit

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

package bridge

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/nuclio/portbridge/pkg/bridge/module"
	_ "github.com/nuclio/portbridge/pkg/bridge/module/builtin"
	"github.com/nuclio/portbridge/pkg/bridge/wire"

	nucliozap "github.com/nuclio/zap"
	"github.com/stretchr/testify/suite"
)

type BridgeSuite struct {
	suite.Suite
}

// run feeds the input through a fresh bridge and returns the decoded output
// lines, readiness line included
func (suite *BridgeSuite) run(capabilities wire.Capabilities,
	modules *module.Registry,
	input string) []map[string]interface{} {

	require := suite.Require()

	loggerInstance, err := nucliozap.NewNuclioZapTest("bridge-test")
	require.NoError(err, "Can't create logger")

	var output bytes.Buffer
	bridgeInstance := NewBridge(loggerInstance,
		wire.NewCodec(capabilities),
		modules,
		strings.NewReader(input),
		&output)

	require.NoError(bridgeInstance.Run())

	var responses []map[string]interface{}
	for _, line := range strings.Split(strings.TrimRight(output.String(), "\n"), "\n") {
		response := map[string]interface{}{}
		require.NoError(json.Unmarshal([]byte(line), &response), "Bad response line: %q", line)
		responses = append(responses, response)
	}

	return responses
}

func (suite *BridgeSuite) runDefault(input string) []map[string]interface{} {
	return suite.run(wire.Capabilities{Arrays: true, Frames: true}, module.RegistrySingleton, input)
}

func (suite *BridgeSuite) TestReadinessLineComesFirst() {
	require := suite.Require()

	responses := suite.runDefault("")
	require.Len(responses, 1)
	require.Equal(true, responses[0]["ready"])
	require.Equal(true, responses[0]["numpy"])
	require.Equal(true, responses[0]["pandas"])
}

func (suite *BridgeSuite) TestReadinessReportsDisabledCapabilities() {
	require := suite.Require()

	responses := suite.run(wire.Capabilities{}, module.RegistrySingleton, "")
	require.Equal(false, responses[0]["numpy"])
	require.Equal(false, responses[0]["pandas"])
}

func (suite *BridgeSuite) TestPing() {
	require := suite.Require()

	responses := suite.runDefault(`{"cmd":"ping"}` + "\n")
	require.Len(responses, 2)
	require.Equal("pong", responses[1]["ok"])
}

func (suite *BridgeSuite) TestHealth() {
	require := suite.Require()

	responses := suite.runDefault(`{"cmd":"health"}` + "\n")
	health := responses[1]["ok"].(map[string]interface{})
	require.Equal(true, health["ok"])
	require.Equal(true, health["numpy"])
	require.Equal(true, health["pandas"])
	require.NotEmpty(health["runtime_version"])
}

func (suite *BridgeSuite) TestControlCommandBypassesDispatch() {
	require := suite.Require()

	// m/f are present but must never be resolved
	responses := suite.runDefault(`{"cmd":"ping","m":"nosuch","f":"x"}` + "\n")
	require.Equal("pong", responses[1]["ok"])
}

func (suite *BridgeSuite) TestUnknownCommandFallsThrough() {
	require := suite.Require()

	responses := suite.runDefault(`{"cmd":"restart"}` + "\n")
	require.Equal("missing m or f", responses[1]["error"])
}

func (suite *BridgeSuite) TestSqrt() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"math","f":"sqrt","a":[16]}` + "\n")
	require.Len(responses, 2)
	require.Equal(4.0, responses[1]["ok"])
}

func (suite *BridgeSuite) TestModuleNotFound() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"nosuch","f":"x"}` + "\n")
	errorMessage := responses[1]["error"].(string)
	require.True(strings.HasPrefix(errorMessage, "Module not found: nosuch - "), errorMessage)
}

func (suite *BridgeSuite) TestFunctionNotFound() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"math","f":"nosuch"}` + "\n")
	errorMessage := responses[1]["error"].(string)
	require.True(strings.HasPrefix(errorMessage, "Function not found: nosuch in math - "), errorMessage)
}

func (suite *BridgeSuite) TestMissingModuleOrFunction() {
	require := suite.Require()

	for _, line := range []string{`{"m":"math"}`, `{"f":"sqrt"}`, `{}`} {
		responses := suite.runDefault(line + "\n")
		require.Equal("missing m or f", responses[1]["error"], "for line %q", line)
	}
}

func (suite *BridgeSuite) TestInvalidJSON() {
	require := suite.Require()

	responses := suite.runDefault("{not json\n")
	require.Len(responses, 2)
	errorMessage := responses[1]["error"].(string)
	require.True(strings.HasPrefix(errorMessage, "Invalid JSON: "), errorMessage)
}

func (suite *BridgeSuite) TestEmptyLinesProduceNoOutput() {
	require := suite.Require()

	responses := suite.runDefault("\n   \n\t\n")
	require.Len(responses, 1, "only the readiness line is expected")
}

func (suite *BridgeSuite) TestOneResponsePerLineInOrder() {
	require := suite.Require()

	input := `{"m":"math","f":"sqrt","a":[16]}` + "\n" +
		"{broken\n" +
		`{"m":"math","f":"sqrt","a":[25]}` + "\n"

	responses := suite.runDefault(input)
	require.Len(responses, 4)
	require.Equal(4.0, responses[1]["ok"])
	require.Contains(responses[2], "error")
	require.Equal(5.0, responses[3]["ok"])
}

func (suite *BridgeSuite) TestKeywordArguments() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"math","f":"round","a":[3.14159],"k":{"ndigits":2}}` + "\n")
	require.Equal(3.14, responses[1]["ok"])
}

func (suite *BridgeSuite) TestPositionalFunctionRejectsKeywordArguments() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"strings","f":"upper","a":["x"],"k":{"unexpected":1}}` + "\n")
	require.Equal("Type error: upper() takes no keyword arguments", responses[1]["error"])
}

func (suite *BridgeSuite) TestEmptyKeywordMappingIsAccepted() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"strings","f":"upper","a":["x"],"k":{}}` + "\n")
	require.Equal("X", responses[1]["ok"])
}

// a marker key turns the whole keyword mapping into a tagged value, which
// cannot serve as keyword arguments - the loop must answer with one error
// line and keep serving
func (suite *BridgeSuite) TestKeywordMappingWithMarkerKeyIsRejected() {
	require := suite.Require()

	input := fmt.Sprintf(`{"m":"strings","f":"upper","a":["x"],"k":{"%s":"QUJD"}}`, wire.BytesKey) + "\n" +
		`{"cmd":"ping"}` + "\n"

	responses := suite.runDefault(input)
	require.Len(responses, 3)

	errorMessage := responses[1]["error"].(string)
	require.True(strings.HasPrefix(errorMessage, "Bridge error: "), errorMessage)
	require.Equal("pong", responses[2]["ok"])
}

func (suite *BridgeSuite) TestNonSequenceArgumentList() {
	require := suite.Require()

	input := `{"m":"math","f":"sqrt","a":5}` + "\n" +
		`{"m":"math","f":"sqrt","a":[16]}` + "\n"

	responses := suite.runDefault(input)
	require.Len(responses, 3)
	require.Contains(responses[1]["error"], "must be a sequence")
	require.Equal(4.0, responses[2]["ok"])
}

func (suite *BridgeSuite) TestNonMappingKeywordArguments() {
	require := suite.Require()

	input := `{"m":"math","f":"sqrt","a":[16],"k":[1,2]}` + "\n" +
		`{"cmd":"ping"}` + "\n"

	responses := suite.runDefault(input)
	require.Len(responses, 3)
	require.Contains(responses[1]["error"], "must be a mapping")
	require.Equal("pong", responses[2]["ok"])
}

func (suite *BridgeSuite) TestValueError() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"math","f":"sqrt","a":[-1]}` + "\n")
	require.Equal("Value error: math domain error", responses[1]["error"])
}

func (suite *BridgeSuite) TestTypeError() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"math","f":"sqrt","a":["not a number"]}` + "\n")
	errorMessage := responses[1]["error"].(string)
	require.True(strings.HasPrefix(errorMessage, "Type error: "), errorMessage)
}

func (suite *BridgeSuite) TestArrayRoundTripThroughDispatch() {
	require := suite.Require()

	source := wire.ArrayFromInt32s([]int32{1, 2, 3, 4}, 2, 2)
	line := fmt.Sprintf(`{"m":"array","f":"sum","a":[{"%s":{"dtype":"i32","shape":[2,2],"data":"%s"}}]}`,
		wire.ArrayKey,
		base64.StdEncoding.EncodeToString(source.Data))

	responses := suite.runDefault(line + "\n")
	require.Equal(10.0, responses[1]["ok"])
}

func (suite *BridgeSuite) TestArrayResultIsEncoded() {
	require := suite.Require()

	responses := suite.runDefault(`{"m":"array","f":"arange","a":[3]}` + "\n")
	payload := responses[1]["ok"].(map[string]interface{})[wire.ArrayKey].(map[string]interface{})
	require.Equal("i64", payload["dtype"])

	data, err := base64.StdEncoding.DecodeString(payload["data"].(string))
	require.NoError(err)
	require.Len(data, 24)
}

func (suite *BridgeSuite) TestArrayMarkerWithoutCapability() {
	require := suite.Require()

	line := fmt.Sprintf(`{"m":"math","f":"sqrt","a":[{"%s":{"dtype":"f64","shape":[],"data":""}}]}`,
		wire.ArrayKey)

	responses := suite.run(wire.Capabilities{}, module.RegistrySingleton, line+"\n")
	errorMessage := responses[1]["error"].(string)
	require.True(strings.HasPrefix(errorMessage, "Bridge error: "), errorMessage)
	require.Contains(errorMessage, "array support is disabled")
}

func (suite *BridgeSuite) TestPanicBecomesErrorResponse() {
	require := suite.Require()

	modules := module.NewRegistry()
	modules.Register(module.NewMapModule("explosive", map[string]module.Function{
		"boom": module.Positional("boom", func(args []interface{}) (interface{}, error) {
			panic("kaboom")
		}),
	}))

	responses := suite.run(wire.Capabilities{Arrays: true, Frames: true},
		modules,
		`{"m":"explosive","f":"boom"}`+"\n")
	require.Contains(responses[1]["error"], "kaboom")
}

func (suite *BridgeSuite) TestUnterminatedFinalLineIsAnswered() {
	require := suite.Require()

	responses := suite.runDefault(`{"cmd":"ping"}`)
	require.Len(responses, 2)
	require.Equal("pong", responses[1]["ok"])
}

func TestBridge(t *testing.T) {
	suite.Run(t, new(BridgeSuite))
}

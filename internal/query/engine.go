// Package query evaluates JMESPath expressions over PartsBox records.
//
// The grammar is the community JMESPath grammar, unmodified, plus four
// registered extension functions that make LLM-authored queries practical
// against PartsBox data: regex_replace, int, str, and nvl. PartsBox field
// names contain slashes ("part/name"), so expressions quote them with double
// quotes; values like "100 ohm" need regex_replace plus int before numeric
// comparison; nullable fields need nvl before contains().
package query

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmespath-community/go-jmespath/pkg/api"
	"github.com/jmespath-community/go-jmespath/pkg/functions"
)

// Engine compiles and evaluates expressions with the extension functions
// registered. The function table is fixed: the four extensions are part of
// the tool contract, not a plugin surface.
type Engine struct {
	funcs []functions.FunctionEntry
}

// New creates an engine with the PartsBox extension functions registered.
func New() *Engine {
	return &Engine{funcs: extensionFunctions()}
}

// Search evaluates expression against data.
//
// Errors cover malformed expressions (with the parser's detail) and function
// misuse such as a null nvl() default. Evaluation never panics through this
// boundary; the caller decides how to surface the error.
func (e *Engine) Search(expression string, data any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()

	compiled, err := api.Compile(expression, e.funcs...)
	if err != nil {
		return nil, err
	}
	return compiled.Search(data)
}

func extensionFunctions() []functions.FunctionEntry {
	// Arguments that must tolerate null are declared JpAny and checked in
	// the handlers; the library's own type checking would otherwise reject
	// null before the handler can apply its degrade-to-identity rules.
	return []functions.FunctionEntry{
		{
			Name: "regex_replace",
			Arguments: []functions.ArgSpec{
				{Types: []functions.JpType{functions.JpString}},
				{Types: []functions.JpType{functions.JpString}},
				{Types: []functions.JpType{functions.JpAny}},
			},
			Handler: jpfRegexReplace,
		},
		{
			Name: "int",
			Arguments: []functions.ArgSpec{
				{Types: []functions.JpType{functions.JpAny}},
			},
			Handler: jpfInt,
		},
		{
			Name: "str",
			Arguments: []functions.ArgSpec{
				{Types: []functions.JpType{functions.JpAny}},
			},
			Handler: jpfStr,
		},
		{
			Name: "nvl",
			Arguments: []functions.ArgSpec{
				{Types: []functions.JpType{functions.JpAny}},
				{Types: []functions.JpType{functions.JpAny}},
			},
			Handler: jpfNvl,
		},
	}
}

// jpfRegexReplace substitutes all matches of a pattern in a string, like
// sed s/pattern/replacement/g. A null value stays null and an invalid
// pattern returns the value unchanged; queries must keep evaluating even
// when one record's field defeats the regex.
func jpfRegexReplace(arguments []any) (any, error) {
	pattern, ok := arguments[0].(string)
	if !ok {
		return arguments[2], nil
	}
	replacement, ok := arguments[1].(string)
	if !ok {
		return arguments[2], nil
	}
	if arguments[2] == nil {
		return nil, nil
	}
	value, ok := arguments[2].(string)
	if !ok {
		return arguments[2], nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return value, nil
	}
	return re.ReplaceAllString(value, replacement), nil
}

// jpfInt converts a string or number to an integer. Null input and
// unparsable strings yield null rather than an error, so filters like
// [?int(field) != null] stay usable on dirty data.
func jpfInt(arguments []any) (any, error) {
	switch v := arguments[0].(type) {
	case float64:
		return math.Trunc(v), nil
	case int:
		return float64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, nil
		}
		return float64(n), nil
	default:
		return nil, nil
	}
}

// jpfStr converts any value to its canonical string form: null becomes
// "null", booleans "true"/"false", numbers their shortest decimal form, and
// collections their JSON encoding.
func jpfStr(arguments []any) (any, error) {
	return stringify(arguments[0]), nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// jpfNvl returns the default when the value is null, like Oracle's NVL.
//
// A null default is rejected on purpose: an unquoted [] or {} literal in
// JMESPath evaluates to null, so silently accepting it would turn an
// authoring mistake into queries that compare against null.
func jpfNvl(arguments []any) (any, error) {
	if arguments[1] == nil {
		return nil, fmt.Errorf("invalid type for value: null in function nvl(); the default must be non-null (write `[]` with backticks, or '' for strings)")
	}
	if arguments[0] == nil {
		return arguments[1], nil
	}
	return arguments[0], nil
}

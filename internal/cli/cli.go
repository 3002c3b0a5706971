// Package cli holds the JSON input and output plumbing shared by the commands.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinIsTerminal reports whether nothing is piped into the process.
func StdinIsTerminal() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) != 0
}

// ReadInput reads path, or stdin when path is blank.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if p := strings.TrimSpace(path); p != "" {
		return os.ReadFile(p)
	}
	return io.ReadAll(stdin)
}

// ParseInputs decodes either one JSON object or an array of them. The second result
// reports whether the input was an array.
func ParseInputs[T any](raw []byte) ([]T, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}

	if trimmed[0] == '[' {
		var inputs []T
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}

	var input T
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []T{input}, false, nil
}

// WriteOutputs prints outputs as an array, or its single element when asArray is false.
func WriteOutputs[T any](w io.Writer, outputs []T, asArray bool) error {
	var v any = outputs
	if !asArray && len(outputs) == 1 {
		v = outputs[0]
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// ErrorOutput is printed when a command fails before producing results.
type ErrorOutput struct {
	Error string `json:"error"`
}

// Fail prints msg as an ErrorOutput and exits with status 1.
func Fail(w io.Writer, msg string) {
	_ = WriteOutputs(w, []ErrorOutput{{Error: msg}}, false)
	os.Exit(1)
}

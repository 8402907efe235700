package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// errorPayload is the machine-readable error half of the output envelope.
type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

// printResult writes a success envelope to stdout.
func printResult(data any) {
	out, err := json.MarshalIndent(map[string]any{
		"success": true,
		"data":    data,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// printError writes a failure envelope to stderr, keeping stdout clean for
// data. Validation and not-found errors carry stable codes so scripts can
// branch on them.
func printError(err error) {
	payload := errorPayload{Code: "unknown_error", Message: err.Error()}

	var verr *model.ValidationError
	var nferr *model.NotFoundError
	switch {
	case errors.As(err, &verr):
		payload.Code = "validation_error"
		payload.Context = verr.Context()
	case errors.As(err, &nferr):
		payload.Code = "not_found"
	}

	out, merr := json.MarshalIndent(map[string]any{
		"success": false,
		"error":   payload,
	}, "", "  ")
	if merr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, string(out))
}

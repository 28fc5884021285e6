// Package cli implements the command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// errReported marks an error whose message was already written as a JSON
// envelope. The process still exits non-zero, but nothing else is printed.
var errReported = errors.New("error already reported")

// outputJSON writes the response as indented JSON.
func outputJSON(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess writes a successful JSON response.
func outputSuccess(w io.Writer, data interface{}) {
	outputJSON(w, Response{OK: true, Data: data})
}

// outputSuccessWithWarnings writes a successful JSON response with warnings.
func outputSuccessWithWarnings(w io.Writer, data interface{}, warnings []Warning) {
	outputJSON(w, Response{OK: true, Data: data, Warnings: warnings})
}

// outputError writes an error JSON response.
func outputError(w io.Writer, code, message, suggestion string) {
	outputJSON(w, Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
		},
	})
}

// handleError reports err according to the output mode. In JSON mode the
// envelope goes to w and errReported is returned; in text mode err is
// returned for Execute to print.
func handleError(w io.Writer, jsonMode bool, code string, err error, suggestion string) error {
	if jsonMode {
		outputError(w, code, err.Error(), suggestion)
		return errReported
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	return err
}

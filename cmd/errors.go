package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/codetrail/devtrack/types"
)

// HandleError prints a user-friendly message and exits with status 1.
// Validation errors always list the offending fields; other technical
// detail is shown only with --verbose.
func HandleError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	var ve *types.ValidationError
	if errors.As(technicalErr, &ve) {
		fmt.Fprintln(os.Stderr, userMsg)
		for _, f := range ve.Fields {
			fmt.Fprintf(os.Stderr, "  - %s\n", f.String())
		}
		return
	}
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error to stderr only when verbose mode is on.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

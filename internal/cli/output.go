package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// printRunStatusJSON writes the run status as one indented JSON document.
func printRunStatusJSON(out io.Writer, status *runStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize run status", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

package media

import "fmt"

// ToolError reports a failed external media-tool invocation for one window,
// carrying the tool's diagnostic output. Extraction is not retried here;
// retry policy belongs to the caller.
type ToolError struct {
	Window int
	Detail string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("media tool failed for window %d: %v: %s", e.Window, e.Err, e.Detail)
	}
	return fmt.Sprintf("media tool failed for window %d: %v", e.Window, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

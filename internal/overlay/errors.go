package overlay

import "fmt"

// TemplateReadError reports a template that is missing, unreadable or not a
// valid PDF document.
type TemplateReadError struct {
	Path string
	Err  error
}

func (e *TemplateReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read template: %v", e.Err)
	}
	return fmt.Sprintf("read template %s: %v", e.Path, e.Err)
}

func (e *TemplateReadError) Unwrap() error { return e.Err }

// OutputWriteError reports an output location that could not be written.
// The previous content of the location, if any, is left untouched.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write output %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

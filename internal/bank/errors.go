package bank

import "fmt"

// DataLoadError indicates the question bank file could not be read or
// did not pass validation. Fatal to startup: without a bank there is
// nothing to play.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load question bank %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load question bank: %v", e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

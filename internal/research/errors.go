package research

import "fmt"

// FetchError reports that a URL could not be fetched after the retry
// budget was exhausted. It is absorbed by the domain researcher and
// never escalates past it.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AcquireError reports that both the static and dynamic acquisition
// paths failed for a URL. The URL contributed zero findings.
type AcquireError struct {
	URL       string
	StaticErr error
	RenderErr error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire %s: static=%v dynamic=%v", e.URL, e.StaticErr, e.RenderErr)
}

// ConfigurationError reports invalid input to the coordinator. It is
// raised before any work begins and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

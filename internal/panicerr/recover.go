// Package panicerr converts panics and abnormal goroutine exits into
// ordinary error returns at an API boundary.
package panicerr

// Recover runs f in its own goroutine, converting any panic or abnormal
// goroutine exit into a non-nil error return.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

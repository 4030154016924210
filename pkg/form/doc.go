// Package form owns the state of one mounted form: the FormState record, the
// field bindings that read and write it, and the controller that runs the
// validate-then-submit lifecycle.
//
// A Controller is created per mount (one HTTP request, one terminal session)
// and discarded afterwards. Submissions are validated synchronously against a
// snapshot of the state; valid payloads are handed to a Submitter without the
// controller waiting for the outcome.
package form

// Package lib groups modules that do not fit strictly into other layers.
//
// Subpackages:
//   - job: asynq worker and the athlete:registered task
//   - email: Resend client and embedded HTML templates
//   - utils: small shared helpers
package lib

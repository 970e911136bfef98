// Package adapter contains the infrastructure ports used by the domain layer:
// loading fact files, turning test scripts into executable bodies, and
// persisting run reports.
package adapter

// Package probe inspects the environment before a project is generated.
//
// Probes are read-only and never fail loudly: a probe that cannot answer
// reports absence, because "not in a workspace" and "default registry" are
// ordinary states. The one exception is PackageManagerMajorVersion, whose
// failure aborts the run since install behavior depends on the answer.
package probe

// Package motor wires a small car out of annotated constructors; the
// registration boilerplate lives in registry_gen.go.
package motor

//go:generate go run github.com/a-peyrard/singlet/cmd/generator

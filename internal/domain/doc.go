// Package domain contains the core types and collaborator interfaces of the
// brand sentiment subsystem. It has no dependencies on other internal packages
// so that every layer can share these definitions.
package domain

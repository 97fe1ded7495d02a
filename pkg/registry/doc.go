// Package registry provides a generic, thread-safe registry for
// storing and retrieving named items. rigup uses it to hold the
// statically declared recipe table, but it is not tied to recipes.
package registry

// Package component defines the component records of the runtime and the
// registry layout that assigns their type ids.
package component

// Package model provides the data structures shared by the pipeline packages.
// It defines the data paths exchanged through the hierarchical data store and
// the data contract every calculation stage declares.
package model

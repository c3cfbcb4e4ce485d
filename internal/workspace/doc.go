// Package workspace holds the documents open in the editor and indexes the
// files under the workspace root for open mode.
package workspace

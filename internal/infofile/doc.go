// Package infofile rewrites version metadata inside a built artifact: the
// version line of extension *.info.yml files and the version field of the
// package manifest. Edits are made in place on the original text.
package infofile

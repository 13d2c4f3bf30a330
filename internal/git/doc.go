// Package git reads release tags and the HEAD commit from a local working
// copy. It never touches remotes: builds run against whatever checkout the
// caller prepared.
package git

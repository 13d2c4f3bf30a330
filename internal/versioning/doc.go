// Package versioning implements the two version schemes used by release artifacts.
//
// Semantic versions ("1.2.3-rc.1+b5") are parsed strictly and compared with
// semantic-versioning precedence. Legacy extension versions ("8.x-1.2-beta3")
// have no patch slot; converting from semantic to legacy drops the patch number
// and that loss is intentional.
package versioning

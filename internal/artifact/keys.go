package artifact

import (
	"git.home.luguber.info/inful/artifactbuilder/internal/composer"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

// State keys shared by the build steps.
var (
	KeyCoreVersion       = pipeline.NewKey[string]("coreVersion")
	KeyArtifactType      = pipeline.NewKey[string]("artifactType")
	KeyVersionPartToBump = pipeline.NewKey[string]("versionPartToBump")
	KeyComposerInfo      = pipeline.NewKey[*composer.Info]("composerInfo")
	KeyPackageKind       = pipeline.NewKey[composer.Kind]("packageKind")

	// KeyLatestVersion is empty when no release tag was found.
	KeyLatestVersion = pipeline.NewKey[string]("latestVersionNumber.semver")
	KeyNextVersion   = pipeline.NewKey[versioning.Version]("nextVersionNumber.semver")
	KeyNextLegacy    = pipeline.NewKey[string]("nextVersionNumber.drupal")

	KeyBuildDir            = pipeline.NewKey[string]("buildDir")
	KeyFiles               = pipeline.NewKey[[]string]("files")
	KeyCustomExtensionDirs = pipeline.NewKey[[]string]("customExtensionDirs")
	KeyFilesToCleanup      = pipeline.NewKey[[]string]("filesToCleanup")
)

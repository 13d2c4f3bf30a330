package filerules

// Baseline returns the exclusions every rule set carries.
func Baseline() []Rule {
	var rules []Rule
	rules = append(rules, vcs()...)
	rules = append(rules, ide()...)
	rules = append(rules, osScratch()...)
	rules = append(rules, Segments(CategoryTooling, StateDir)...)
	return rules
}

// StateDir holds the build history and is never part of an artifact.
const StateDir = ".artifactbuilder"

func vcs() []Rule {
	rules := Segments(CategoryVCS, ".git", ".gtm", ".svn", ".hg", ".bzr", "CVS")
	return append(rules, Names(CategoryVCS, Exclude, ".gitignore")...)
}

func ide() []Rule {
	rules := Segments(CategoryIDE, ".idea", ".phpstorm.meta.php", ".kdev4", ".kateproject.d", "nbproject", ".settings", ".vscode")
	return append(rules, Names(CategoryIDE, Exclude,
		"*___jb_old___", "*.kdev4", ".kdev*", "cifs*", "*~", ".*.kate-swp",
		".kateconfig", ".kateproject", "*.loalize", ".buildpath", ".project",
		".*.swp", ".phing_targets", "nohup.out", ".~lock.*",
	)...)
}

func osScratch() []Rule {
	return Names(CategoryOS, Exclude, ".directory", ".directory.lock.*.test", ".DS_Store", "._*", "Thumbs.db")
}

func php() []Rule {
	rules := Names(CategorySource, Include, "*.php", "*.inc", "*.install", "*.module", "*.theme", "*.profile", "*.engine")
	rules = append(rules, Segments(CategoryDependency, "vendor")...)
	return append(rules, Names(CategoryTooling, Exclude,
		".phpbrewrc", "composer.lock", "phpcs.xml.dist", "phpcs.xml", "phpunit.xml.dist", "phpunit.xml",
	)...)
}

func stylesheets(withPartials bool) []Rule {
	rules := Names(CategoryStylesheet, Include, "*.css")
	if withPartials {
		rules = append(rules, Names(CategoryStylesheet, Include, "_?*.scss", "_?*.sass")...)
	}
	rules = append(rules, Segments(CategoryTooling, ".sass-cache")...)
	return append(rules, Names(CategoryTooling, Exclude,
		"config.rb", ".sass-lint.yml", "sass-lint.yml", ".scss-lint.yml", "scss-lint.yml", "*.css.map",
	)...)
}

func scripts() []Rule {
	rules := Names(CategoryScript, Include, "*.js")
	rules = append(rules, Segments(CategoryDependency, "node_modules")...)
	return append(rules, Names(CategoryTooling, Exclude,
		".npmignore", "*.js.map", "npm-debug.log", "npm-shrinkwrap.json", "package.json",
		"yarn.lock", "yarn-error.log", ".nvmrc", ".eslintignore", ".eslintrc.json",
		"bower.json", ".bowerrc", "Gruntfile.js", "gulpfile.js", ".istanbul.yml",
	)...)
}

func typeDeclarations() []Rule {
	rules := Names(CategoryTypes, Include, "*.d.ts")
	rules = append(rules, Segments(CategoryDependency, "typings")...)
	return append(rules, Names(CategoryTooling, Exclude, "typings.json", "tsconfig.json", "tsd.json", "tslint.json")...)
}

func images() []Rule {
	return Names(CategoryImage, Include, "*.png", "*.jpeg", "*.jpg", "*.gif", "*.svg", "*.ico")
}

func fonts() []Rule {
	return Names(CategoryFont, Include, "*.ttf", "*.otf", "*.woff", "*.woff2", "*.eot")
}

func ruby() []Rule {
	rules := Segments(CategoryRuby, ".bundle")
	return append(rules, Names(CategoryRuby, Exclude, ".ruby-version", ".ruby-gemset", ".rvmrc", "Gemfile", "Gemfile.lock")...)
}

func docker() []Rule {
	return Names(CategoryDocker, Exclude, "Dockerfile", "docker-compose.yml", ".dockerignore")
}

func ci() []Rule {
	rules := Segments(CategoryCI, ".gitlab", ".github", ".circle", ".circleci")
	return append(rules, Names(CategoryCI, Exclude, "Jenkinsfile", ".gitlab-ci.yml", ".travis.yml", "circle.yml")...)
}

// artifactDir excludes the output directory so a build never copies itself.
func artifactDir(dir string) []Rule {
	return Paths(CategoryArtifact, Exclude, QuoteGlob(dir)+"/**")
}

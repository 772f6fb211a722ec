package fileinfo

import "regexp"

// ignorePatterns matches dependency lock files, build output, generated code and minified assets.
var ignorePatterns = regexp.MustCompile(`(^|/)(` +
	`go\.mod|go\.sum|Gopkg\.lock|package-lock\.json|yarn\.lock|pnpm-lock\.yaml|Cargo\.lock|composer\.lock|Gemfile\.lock|poetry\.lock|` +
	`node_modules/.*|vendor/.*|bower_components/.*|target/.*|build/.*|out/.*|dist/.*|bin/.*|obj/.*|\.gradle/.*|\.idea/.*|` +
	`.*\.min\.(js|css)|.*\.map|.*\.pb\.go|.*_gen\.go|.*\.generated\.\w+|.*\.class|.*\.jar|.*\.war` +
	`)$`)

// Package manifest reads npm package manifests (package.json).
//
// The CLI's own manifest is embedded at build time and supplies the version
// printed by --version; it must carry a valid semantic version. Manifests of
// locally installed delegate packages are read leniently so a package with an
// odd version string still counts as installed.
package manifest

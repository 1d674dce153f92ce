package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the manifest file name npm packages carry at their root.
const FileName = "package.json"

//go:embed package.json
var selfManifest []byte

// Package is the subset of package.json fields pika reads.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Source loads a manifest. Dispatchers hold one so tests can supply their own.
type Source func() (*Package, error)

// Parse decodes manifest JSON without validating its contents.
func Parse(data []byte) (*Package, error) {
	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &pkg, nil
}

// Read loads and decodes the manifest at path.
func Read(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkg, nil
}

// Self returns the embedded manifest of the pika CLI itself.
func Self() (*Package, error) {
	pkg, err := Parse(selfManifest)
	if err != nil {
		return nil, err
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Validate requires a package name and a semantic version.
func (p *Package) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("manifest name is required")
	}
	if _, err := p.SemVer(); err != nil {
		return err
	}
	return nil
}

// SemVer parses the manifest version.
func (p *Package) SemVer() (*semver.Version, error) {
	if strings.TrimSpace(p.Version) == "" {
		return nil, errors.New("manifest version is required")
	}
	v, err := semver.StrictNewVersion(p.Version)
	if err != nil {
		return nil, fmt.Errorf("manifest version %q: %w", p.Version, err)
	}
	return v, nil
}

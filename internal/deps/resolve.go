package deps

import (
	"os"
	"path/filepath"
	"strings"

	"pika/internal/manifest"
)

const nodeModules = "node_modules"

// LocalPackage describes a package found on the Node module search path.
type LocalPackage struct {
	Name    string
	Dir     string
	Version string
}

// ResolvePackage looks for name the way Node resolves a bare specifier from
// fromDir: node_modules in fromDir and each ancestor, then NODE_PATH, then the
// legacy global folders under HOME. It never fails; a package that cannot be
// found, or an unusable name, reports ok=false.
func ResolvePackage(fromDir, name string) (LocalPackage, bool) {
	name = strings.TrimSpace(name)
	if !isBareSpecifier(name) {
		return LocalPackage{}, false
	}
	if strings.TrimSpace(fromDir) == "" {
		fromDir = "."
	}
	start, err := filepath.Abs(fromDir)
	if err != nil {
		return LocalPackage{}, false
	}

	for _, root := range searchPaths(start) {
		dir := filepath.Join(root, filepath.FromSlash(name))
		if pkg, ok := loadPackageDir(dir, name); ok {
			return pkg, true
		}
	}
	return LocalPackage{}, false
}

func searchPaths(start string) []string {
	var paths []string
	for dir := start; ; {
		if filepath.Base(dir) != nodeModules {
			paths = append(paths, filepath.Join(dir, nodeModules))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for _, entry := range filepath.SplitList(os.Getenv("NODE_PATH")) {
		if entry = strings.TrimSpace(entry); entry != "" {
			paths = append(paths, entry)
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths,
			filepath.Join(home, ".node_modules"),
			filepath.Join(home, ".node_libraries"),
		)
	}
	return paths
}

func loadPackageDir(dir, name string) (LocalPackage, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return LocalPackage{}, false
	}
	pkg := LocalPackage{Name: name, Dir: dir}
	manifestPath := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		if parsed, err := manifest.Read(manifestPath); err == nil {
			pkg.Version = parsed.Version
		}
		return pkg, true
	}
	if _, err := os.Stat(filepath.Join(dir, "index.js")); err == nil {
		return pkg, true
	}
	return LocalPackage{}, false
}

func isBareSpecifier(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return false
	}
	if strings.HasPrefix(name, "@") {
		scope, pkg, ok := strings.Cut(name, "/")
		return ok && len(scope) > 1 && pkg != "" && !strings.Contains(pkg, "/")
	}
	return true
}

package main

import (
	"fmt"
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func loadPackages(t *testing.T) []*build.Package {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	var pkgs []*build.Package
	seen := make(map[string]bool)
	err = filepath.WalkDir(wd, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if name == "" || name[0] == '.' || name[0] == '_' || name == "vendor" || name == "tmp" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && filepath.Ext(name) == ".go" && !strings.HasSuffix(name, "_test.go") {
			dir := filepath.Dir(path)
			if !seen[dir] {
				pkg, err := build.ImportDir(dir, build.ImportComment)
				if err != nil {
					return fmt.Errorf("%s: %s", dir, err)
				}
				if pkg.ImportPath == "" || pkg.ImportPath == "." {
					importPath, err := filepath.Rel(wd, dir)
					if err != nil {
						t.Fatal(err)
					}
					pkg.ImportPath = filepath.ToSlash(filepath.Join("github.com/nihao-tui/nihao", importPath))
				}

				pkgs = append(pkgs, pkg)
				seen[dir] = true
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].ImportPath < pkgs[j].ImportPath
	})
	return pkgs
}

var sourceImporter = importer.ForCompiler(token.NewFileSet(), "source", nil)

// usage identifies a package-level object, e.g. os.Exit
type usage struct {
	pkg  string
	name string
}

func (u usage) String() string {
	return u.pkg + "." + u.name
}

// checkPackageForUses reports references to any of the forbidden objects
// outside the allowed files. allowed maps a slash separated file name
// relative to the module root to the number of permitted references.
func checkPackageForUses(t *testing.T, bpkg *build.Package, forbidden []usage, allowed map[string]int) (found bool) {
	var files []*ast.File
	fset := token.NewFileSet()
	for _, name := range bpkg.GoFiles {
		filename := filepath.Join(bpkg.Dir, name)
		af, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, af)
	}

	info := types.Info{
		Uses: make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{
		Importer: sourceImporter,
	}
	_, err := conf.Check(bpkg.Name, fset, files, &info)
	if err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	for id, obj := range info.Uses {
		if obj.Pkg() == nil || obj.Parent() != obj.Pkg().Scope() {
			continue
		}
		for _, f := range forbidden {
			if obj.Pkg().Path() != f.pkg || obj.Name() != f.name {
				continue
			}
			pos := fset.Position(id.Pos())

			name, err := filepath.Rel(wd, pos.Filename)
			if err != nil {
				t.Log(err)
				name = pos.Filename
			}
			name = filepath.ToSlash(name)

			// Check if the usage is allowed
			if allowed[name] > 0 {
				allowed[name]--
				continue
			}

			t.Errorf("%s referenced at: %s:%d:%d", f, name, pos.Line, pos.Column)
			found = true
		}
	}
	return found
}

func allowedNames(allowed map[string]int) string {
	var names []string
	for name := range allowed {
		names = append(names, fmt.Sprintf("%q", name))
	}
	sort.Strings(names)
	return strings.Join(names, "\n    ")
}

// Enforce that src/util.Exit() is used instead of os.Exit by prohibiting
// references to it anywhere else. Exiting any other way would leave the
// terminal in full-screen raw mode.
func TestOSExitNotAllowed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping: short test")
	}
	allowed := map[string]int{
		"src/util/atexit.go": 1, // os.Exit allowed 1 time in "atexit.go"
	}
	var errOsExit bool
	for _, pkg := range loadPackages(t) {
		t.Run(pkg.ImportPath, func(t *testing.T) {
			if checkPackageForUses(t, pkg, []usage{{"os", "Exit"}}, allowed) {
				errOsExit = true
			}
		})
	}
	if t.Failed() && errOsExit {
		const errMsg = `
Test failed because os.Exit was referenced outside of the following files:

    %s

Use github.com/nihao-tui/nihao/src/util.Exit() instead to exit the program.
This is enforced because calling os.Exit() prevents the functions
registered with util.AtExit() from running.`

		t.Errorf(errMsg, allowedNames(allowed))
	}
}

// The terminal belongs to the renderer while the greeting is shown, so only
// the entry point may print to the standard streams.
func TestStandardStreamsNotWritten(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping: short test")
	}
	forbidden := []usage{
		{"os", "Stdout"},
		{"os", "Stderr"},
		{"fmt", "Print"},
		{"fmt", "Printf"},
		{"fmt", "Println"},
		{"log", "Print"},
		{"log", "Printf"},
		{"log", "Println"},
	}
	allowed := map[string]int{
		"main.go": 4, // usage, version and the final error message
	}
	for _, pkg := range loadPackages(t) {
		t.Run(pkg.ImportPath, func(t *testing.T) {
			checkPackageForUses(t, pkg, forbidden, allowed)
		})
	}
	if t.Failed() {
		t.Logf("standard streams may only be written from:\n    %s", allowedNames(allowed))
	}
}

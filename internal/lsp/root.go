package lsp

import (
	"os"
	"path/filepath"

	"bslint/internal/document"
	"bslint/internal/project"
)

// workspaceRoot выбирает корень из параметров initialize: rootUri, затем
// rootPath, затем первая папка рабочей области.
func workspaceRoot(params initializeParams) string {
	root := ""
	if params.RootURI != "" {
		root = document.PathFromURI(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = document.PathFromURI(params.WorkspaceFolders[0].URI)
	}
	if root == "" {
		return ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return root
}

// resolveConfig finds the configuration file for the workspace. An explicit
// path wins; otherwise the search walks up from root. Without a file the
// workspace root itself becomes the configuration root.
func resolveConfig(explicit, root string) (cfg project.Config, configRoot string, err error) {
	path := explicit
	if path == "" && root != "" {
		found, ok, findErr := project.FindConfig(resolveStartDir(root))
		if findErr != nil {
			return project.DefaultConfig(filepath.Base(root)), root, findErr
		}
		if ok {
			path = found
		}
	}
	if path == "" {
		return project.DefaultConfig(filepath.Base(root)), root, nil
	}
	loaded, err := project.LoadConfig(path)
	if err != nil {
		return project.DefaultConfig(filepath.Base(root)), filepath.Dir(path), err
	}
	return *loaded, filepath.Dir(path), nil
}

func resolveStartDir(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

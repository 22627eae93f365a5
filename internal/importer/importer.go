package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"selpkm/internal/contextutil"
	"selpkm/internal/storage"
)

// Importer mirrors a directory of markdown files as containers and notes.
type Importer struct {
	containers storage.ContainerStore
	notes      storage.NoteStore
	titles     *TitleExtractor
}

// New creates a new Importer.
func New(containers storage.ContainerStore, notes storage.NoteStore) *Importer {
	return &Importer{
		containers: containers,
		notes:      notes,
		titles:     NewTitleExtractor(),
	}
}

// Import scans root and stores every markdown file as a note. The root maps
// to a top-level container named rootName (the directory name when empty)
// and each sub-folder to a child container named "rootName/sub/folder".
// Containers that already exist are reused. Errors for individual files are
// logged but don't stop the import; the returned error reports how many
// files failed.
func (im *Importer) Import(ctx context.Context, root, rootName string) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var stats Stats

	if rootName == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return stats, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		rootName = filepath.Base(abs)
	}

	files, err := Scan(ctx, root)
	if err != nil {
		return stats, err
	}

	logger.InfoContext(ctx, "starting import", "root", root, "container", rootName, "total_files", len(files))

	folders := map[string]int64{}
	rootID, err := im.ensureContainer(ctx, rootName, storage.Selector{}, &stats)
	if err != nil {
		return stats, fmt.Errorf("failed to create root container: %w", err)
	}
	folders[""] = rootID

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := im.importFile(ctx, file, rootName, folders, &stats); err != nil {
			stats.Errors++
			logger.ErrorContext(ctx, "failed to import file", "rel_path", file.RelPath, "error", err)
			continue
		}
	}

	logger.InfoContext(ctx, "import completed",
		"total_files", len(files), "containers", stats.Containers, "notes", stats.Notes, "errors", stats.Errors)

	if stats.Errors > 0 {
		return stats, fmt.Errorf("import completed with %d errors", stats.Errors)
	}
	return stats, nil
}

func (im *Importer) importFile(ctx context.Context, file ScannedFile, rootName string, folders map[string]int64, stats *Stats) error {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
	}

	containerID, err := im.folderContainer(ctx, file.Folder, rootName, folders, stats)
	if err != nil {
		return err
	}

	title := im.titles.Title(content, path.Base(file.RelPath))
	var description *string
	if body := strings.TrimSpace(string(content)); body != "" {
		description = &body
	}

	if _, err := im.notes.AddNote(ctx, title, description, storage.ByID(containerID)); err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	stats.Notes++
	return nil
}

// folderContainer returns the container for folder, creating it and any
// missing ancestors.
func (im *Importer) folderContainer(ctx context.Context, folder, rootName string, folders map[string]int64, stats *Stats) (int64, error) {
	if id, ok := folders[folder]; ok {
		return id, nil
	}

	parentID, err := im.folderContainer(ctx, parentFolder(folder), rootName, folders, stats)
	if err != nil {
		return 0, err
	}

	id, err := im.ensureContainer(ctx, rootName+"/"+folder, storage.ByID(parentID), stats)
	if err != nil {
		return 0, fmt.Errorf("failed to create container for %s: %w", folder, err)
	}
	folders[folder] = id
	return id, nil
}

func (im *Importer) ensureContainer(ctx context.Context, name string, parent storage.Selector, stats *Stats) (int64, error) {
	c, err := im.containers.GetContainer(ctx, storage.ByName(name))
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	id, err := im.containers.AddContainer(ctx, name, parent)
	if err != nil {
		return 0, err
	}
	stats.Containers++
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "created container", "name", name, "container_id", id)
	return id, nil
}

func parentFolder(folder string) string {
	parent := path.Dir(folder)
	if parent == "." {
		return ""
	}
	return parent
}

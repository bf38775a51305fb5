package ops

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ArchiveSaves writes every save slot in saveDir into a tar.gz archive.
// The save directory is flat: one .json file per slot, nothing nested, so
// anything else in the directory is left out of the archive.
func ArchiveSaves(saveDir, archivePath string) error {
	saveDir = filepath.Clean(strings.TrimSpace(saveDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if saveDir == "" || archivePath == "" {
		return fmt.Errorf("saveDir and archivePath are required")
	}

	entries, err := os.ReadDir(saveDir)
	if err != nil {
		return err
	}
	var slots []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		slots = append(slots, e.Name())
	}
	if len(slots) == 0 {
		return fmt.Errorf("no save slots in %s", saveDir)
	}
	sort.Strings(slots)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	for _, name := range slots {
		path := filepath.Join(saveDir, name)
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = name
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(tw, src); err != nil {
			src.Close()
			return err
		}
		if err := src.Close(); err != nil {
			return err
		}
	}
	return nil
}

// RestoreSaves unpacks an archive produced by ArchiveSaves into saveDir,
// overwriting slots of the same name. Entries that are not flat .json slot
// files are rejected rather than skipped: an archive with anything else in
// it was not produced by this tool.
func RestoreSaves(archivePath, saveDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	saveDir = filepath.Clean(strings.TrimSpace(saveDir))
	if archivePath == "" || saveDir == "" {
		return fmt.Errorf("archivePath and saveDir are required")
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		name, err := slotEntryName(hdr)
		if err != nil {
			return err
		}
		outPath := filepath.Join(saveDir, name)
		dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return err
		}
		if err := dst.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ListArchive returns the slot names inside an archive without unpacking.
func ListArchive(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var slots []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name, err := slotEntryName(hdr)
		if err != nil {
			return nil, err
		}
		slots = append(slots, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(slots)
	return slots, nil
}

func slotEntryName(hdr *tar.Header) (string, error) {
	if hdr.Typeflag != tar.TypeReg {
		return "", fmt.Errorf("unexpected archive entry type for %s", hdr.Name)
	}
	name := filepath.Clean(strings.TrimSpace(hdr.Name))
	if name == "" || name == "." || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid archive entry path: %s", hdr.Name)
	}
	if filepath.Ext(name) != ".json" {
		return "", fmt.Errorf("archive entry is not a save slot: %s", hdr.Name)
	}
	return name, nil
}

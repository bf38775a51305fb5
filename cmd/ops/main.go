package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vraelian/experimental-sub000/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "list":
		if err := cmdList(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "list failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	saveDir := fs.String("save-dir", "saves", "path to the save directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "orbital-"+ts+".tar.gz")
	}

	if err := ops.ArchiveSaves(*saveDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("save-dir", "saves-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.RestoreSaves(*archive, *target)
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	archive := fs.String("archive", "", "backup archive (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	slots, err := ops.ListArchive(*archive)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		fmt.Println(slot)
	}
	return nil
}

// cmdDrill backs up, restores into a scratch directory and verifies every
// slot came back byte for byte.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	saveDir := fs.String("save-dir", "saves", "path to the save directory")
	workDir := fs.String("work-dir", os.TempDir(), "workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "orbital-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "orbital-drill-restore-"+ts)

	if err := ops.ArchiveSaves(*saveDir, archive); err != nil {
		return err
	}
	if err := ops.RestoreSaves(archive, restoreDir); err != nil {
		return err
	}

	slots, err := ops.ListArchive(archive)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		orig, err := os.ReadFile(filepath.Join(*saveDir, slot+".json"))
		if err != nil {
			return err
		}
		restored, err := os.ReadFile(filepath.Join(restoreDir, slot+".json"))
		if err != nil {
			return err
		}
		if !bytes.Equal(orig, restored) {
			return fmt.Errorf("slot %s differs after restore", slot)
		}
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("slots verified:", len(slots))
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  orbital-ops backup  --save-dir saves --out backups/saves.tar.gz")
	fmt.Println("  orbital-ops restore --archive backups/saves.tar.gz --save-dir saves-restored")
	fmt.Println("  orbital-ops list    --archive backups/saves.tar.gz")
	fmt.Println("  orbital-ops drill   --save-dir saves --work-dir /tmp")
}

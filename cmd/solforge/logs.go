package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var validatorLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show output from the most recent validator run",
	Long: `Show output captured from the most recent validator run.

Each run writes its combined stdout/stderr to a log file under the data
directory; logs prints the tail of the newest one. With --follow the
command keeps printing as the file grows, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		lines, _ := cmd.Flags().GetInt("lines")
		follow, _ := cmd.Flags().GetBool("follow")

		path, err := newestLogFile(filepath.Join(dataDir, "logs"))
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "==> %s\n", path)
		offset, err := printTail(os.Stdout, path, lines)
		if err != nil {
			return err
		}
		if !follow {
			return nil
		}

		return followFile(os.Stdout, path, offset)
	},
}

func init() {
	validatorLogsCmd.Flags().IntP("lines", "n", 100, "Number of trailing lines to print")
	validatorLogsCmd.Flags().BoolP("follow", "f", false, "Keep printing as the log grows")
}

// newestLogFile returns the most recently modified per-run log file in
// dir
func newestLogFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "validator-*.log"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no validator logs under %s; has a validator run yet?", dir)
	}

	newest := ""
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = m
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no readable validator logs under %s", dir)
	}
	return newest, nil
}

// printTail writes the last n lines of the file to w and returns the
// file size, so a follower can resume where the tail ended
func printTail(w io.Writer, path string, n int) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read log: %w", err)
	}

	text := strings.TrimRight(string(data), "\n")
	if text != "" {
		all := strings.Split(text, "\n")
		if n > 0 && len(all) > n {
			all = all[len(all)-n:]
		}
		for _, line := range all {
			fmt.Fprintln(w, line)
		}
	}

	return int64(len(data)), nil
}

// followFile polls the file for appended data and copies it to w until
// a signal arrives. A shrinking file means the run was restarted over
// the same path; the follower rewinds to the start.
func followFile(w io.Writer, path string, offset int64) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			return nil
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("log file went away: %w", err)
			}
			if info.Size() < offset {
				offset = 0
			}
			if info.Size() == offset {
				continue
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			if _, err := f.Seek(offset, io.SeekStart); err != nil {
				f.Close()
				return err
			}
			n, err := io.Copy(w, f)
			f.Close()
			if err != nil {
				return err
			}
			offset += n
		}
	}
}

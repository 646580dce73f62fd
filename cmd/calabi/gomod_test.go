package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestGoSum_CoversRequirements guards the read-only module builds in CI and
// the image: every required module needs its go.mod hash, and every direct
// requirement its content hash, in go.sum.
func TestGoSum_CoversRequirements(t *testing.T) {
	root := filepath.Join("..", "..")
	sums := readLines(t, filepath.Join(root, "go.sum"))
	have := make(map[string]bool, len(sums))
	for _, line := range sums {
		fields := strings.Fields(line)
		if len(fields) != 3 || !strings.HasPrefix(fields[2], "h1:") {
			t.Errorf("malformed go.sum line %q", line)
			continue
		}
		have[fields[0]+" "+fields[1]] = true
	}

	reqs := requirements(t, readLines(t, filepath.Join(root, "go.mod")))
	if len(reqs) == 0 {
		t.Fatal("go.mod has no requirements")
	}
	for _, r := range reqs {
		if !have[r.path+" "+r.version+"/go.mod"] {
			t.Errorf("go.sum is missing the go.mod hash of %s %s", r.path, r.version)
		}
		if !r.indirect && !have[r.path+" "+r.version] {
			t.Errorf("go.sum is missing the module hash of %s %s", r.path, r.version)
		}
	}
}

type requirement struct {
	path, version string
	indirect      bool
}

func requirements(t *testing.T, lines []string) []requirement {
	t.Helper()
	var (
		out   []requirement
		block bool
	)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "require (":
			block = true
			continue
		case block && line == ")":
			block = false
			continue
		case strings.HasPrefix(line, "require "):
			line = strings.TrimPrefix(line, "require ")
		case !block:
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		out = append(out, requirement{
			path:     fields[0],
			version:  fields[1],
			indirect: strings.HasSuffix(line, "// indirect"),
		})
	}
	return out
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return lines
}

package catalog

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Partition is the logical dataset section a listed scene belongs to.
type Partition string

const (
	PartitionRaw       Partition = "raw"
	PartitionProcessed Partition = "processed"
)

// Entry is one scene token found in a tree listing, attributed to a
// partition from its ancestor directories.
type Entry struct {
	Name      string
	Partition Partition
}

// sceneToken matches a scene name anywhere in a listing line.
var sceneToken = regexp.MustCompile(`scene\d+_\d+`)

// treeConnectors are the branch markers emitted by the Unix tree command.
var treeConnectors = []string{"├── ", "└── "}

// ScanListing parses a pre-captured tree listing (the output of running
// tree over the dataset root) and extracts scene entries in the order they
// appear. Duplicate names are dropped, keeping the first occurrence.
//
// Partition attribution is a best-effort heuristic: a scene is considered
// raw when any ancestor directory name contains the substring "raw", and
// processed otherwise. Ancestry is reconstructed from the connector depth
// of each line. A scene whose own name happened to contain "raw" would not
// be misattributed (only ancestors are inspected), but unusual directory
// names around the scans tree can still fool the substring check.
func ScanListing(r io.Reader) ([]Entry, error) {
	var (
		entries   []Entry
		seen      = map[string]bool{}
		ancestors []string
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		name, depth, ok := parseTreeLine(sc.Text())
		if !ok {
			continue
		}

		if depth < len(ancestors) {
			ancestors = ancestors[:depth]
		}
		for len(ancestors) < depth {
			ancestors = append(ancestors, "")
		}

		if m := sceneToken.FindString(name); m != "" && sceneName.MatchString(name) {
			if !seen[m] {
				seen[m] = true
				entries = append(entries, Entry{Name: m, Partition: partitionOf(ancestors)})
			}
		}
		ancestors = append(ancestors, name)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Names filters entries down to the given partition and returns the scene
// names in listing order. An empty partition selects everything.
func Names(entries []Entry, p Partition) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if p != "" && e.Partition != p {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

func partitionOf(ancestors []string) Partition {
	for _, a := range ancestors {
		if strings.Contains(a, "raw") {
			return PartitionRaw
		}
	}
	return PartitionProcessed
}

// parseTreeLine splits one tree output line into the entry name and its
// depth. Depth 0 is the root line (no connector); each four-rune indent
// group ("│   " or "    ") adds one level below the connector's own level.
func parseTreeLine(line string) (name string, depth int, ok bool) {
	for _, conn := range treeConnectors {
		if idx := strings.Index(line, conn); idx >= 0 {
			name = strings.TrimSuffix(strings.TrimSpace(line[idx+len(conn):]), "/")
			if name == "" {
				return "", 0, false
			}
			return name, utf8.RuneCountInString(line[:idx])/4 + 1, true
		}
	}
	name = strings.TrimSpace(strings.TrimSuffix(line, "/"))
	if name == "" {
		return "", 0, false
	}
	return name, 0, true
}

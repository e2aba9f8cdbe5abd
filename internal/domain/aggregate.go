package domain

import (
	"sort"
	"strings"
)

// AddScript counts one evaluated script. A script that failed a required
// check is both a failure and a required failure.
func (s *Summary) AddScript(r ScriptReport) {
	s.Scripts++
	if r.Passed {
		s.Passed++
		return
	}
	s.Failed++
	s.RequiredFailures++
}

// AddSampleError counts a sample-level error (missing or empty root). It
// never touches the script or folder counters.
func (s *Summary) AddSampleError() {
	s.Failed++
	s.RequiredFailures++
}

// AddSample records a finished sample report in the counters.
func (s *Summary) AddSample(r SampleReport) {
	s.SampleFolders++
	s.Folders += len(r.Folders)
}

// GroupByFolder buckets scripts by folder, case-insensitively, keeping the
// first spelling seen as the label. Folders and the scripts inside them are
// sorted case-insensitively.
func GroupByFolder(scripts []ScriptReport) []FolderReport {
	index := make(map[string]int)
	var folders []FolderReport

	for _, sc := range scripts {
		key := strings.ToLower(sc.Folder)
		i, ok := index[key]
		if !ok {
			i = len(folders)
			index[key] = i
			folders = append(folders, FolderReport{Folder: sc.Folder})
		}
		folders[i].Scripts = append(folders[i].Scripts, sc)
	}

	sort.SliceStable(folders, func(i, j int) bool {
		return lessFold(folders[i].Folder, folders[j].Folder)
	})
	for i := range folders {
		scripts := folders[i].Scripts
		sort.SliceStable(scripts, func(a, b int) bool {
			return lessFold(scripts[a].FileName, scripts[b].FileName)
		})
	}

	return folders
}

// SortSampleRoots orders sample roots case-insensitively by absolute path.
func SortSampleRoots(roots []SampleRoot) {
	sort.SliceStable(roots, func(i, j int) bool {
		return lessFold(roots[i].Path, roots[j].Path)
	})
}

// SortPathsFold orders paths case-insensitively, breaking ties ordinally so
// the order never depends on input order.
func SortPathsFold(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return lessFold(paths[i], paths[j])
	})
}

// lessFold compares upper-cased strings ordinally, so punctuation between
// 'Z' and 'a' (such as '_') sorts after every letter.
func lessFold(a, b string) bool {
	ua, ub := strings.ToUpper(a), strings.ToUpper(b)
	if ua != ub {
		return ua < ub
	}
	return a < b
}

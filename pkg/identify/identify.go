// Package identify classifies files into the tag sets used to evaluate a
// hook's types/types_or/exclude_types filters: language tags derived from
// extension or filename, structural tags derived from stat (file, directory,
// symlink, executable), and the text/binary split derived from a content
// sample.
package identify

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ExtensionTags maps a tag name to the file extensions that carry it.
// Extensions are matched case-insensitively against filepath.Ext.
var ExtensionTags = map[string][]string{
	"python":        {".py", ".pyi", ".pyx"},
	"javascript":    {".js", ".jsx", ".mjs", ".cjs"},
	"typescript":    {".ts", ".tsx", ".mts", ".cts"},
	"go":            {".go"},
	"java":          {".java"},
	"c":             {".c", ".h"},
	"c++":           {".cpp", ".cc", ".cxx", ".hpp", ".hxx", ".hh"},
	"rust":          {".rs"},
	"ruby":          {".rb", ".rbw"},
	"php":           {".php", ".phtml"},
	"swift":         {".swift"},
	"kotlin":        {".kt", ".kts"},
	"scala":         {".scala", ".sc"},
	"c#":            {".cs"},
	"perl":          {".pl", ".pm"},
	"lua":           {".lua"},
	"r":             {".r", ".rmd"},
	"haskell":       {".hs", ".lhs"},
	"clojure":       {".clj", ".cljs", ".cljc"},
	"erlang":        {".erl", ".hrl"},
	"elixir":        {".ex", ".exs"},
	"dart":          {".dart"},
	"julia":         {".jl"},
	"html":          {".html", ".htm", ".xhtml"},
	"css":           {".css", ".scss", ".sass", ".less"},
	"xml":           {".xml", ".xsd", ".xsl"},
	"yaml":          {".yaml", ".yml"},
	"json":          {".json", ".jsonc"},
	"toml":          {".toml"},
	"markdown":      {".md", ".markdown", ".mdown", ".mkd"},
	"sql":           {".sql"},
	"shell":         {".sh", ".bash", ".zsh", ".fish"},
	"powershell":    {".ps1", ".psm1", ".psd1"},
	"vue":           {".vue"},
	"svelte":        {".svelte"},
	"proto":         {".proto"},
	"dockerfile":    {".dockerfile"},
	"terraform":     {".tf", ".tfvars"},
	"graphql":       {".graphql", ".gql"},
	"jinja":         {".j2", ".jinja", ".jinja2"},
	"plain-text":    {".txt", ".rst", ".log", ".cfg", ".conf", ".ini", ".properties"},
	"batch":         {".bat", ".cmd"},
	"makefile":      {".mk"},
	"groovy":        {".groovy", ".gvy"},
	"nim":           {".nim"},
	"zig":           {".zig"},
	"ocaml":         {".ml", ".mli"},
}

// FileNameTags maps a tag name to exact (case-insensitive) basenames that
// carry it, for files identified by name rather than extension.
var FileNameTags = map[string][]string{
	"dockerfile": {"dockerfile"},
	"makefile":   {"makefile", "gnumakefile"},
	"ruby":       {"gemfile", "rakefile"},
}

// shebangInterpreterTags maps the basename of a shebang interpreter to the
// tags it implies, mirroring identify's shebang table.
var shebangInterpreterTags = map[string][]string{
	"python":  {"python"},
	"python2": {"python", "python2"},
	"python3": {"python", "python3"},
	"sh":      {"shell", "sh"},
	"bash":    {"shell", "bash"},
	"zsh":     {"shell", "zsh"},
	"fish":    {"shell", "fish"},
	"perl":    {"perl"},
	"ruby":    {"ruby"},
	"node":    {"javascript", "node"},
	"nodejs":  {"javascript", "node"},
	"deno":    {"javascript", "typescript", "deno"},
	"lua":     {"lua"},
	"php":     {"php"},
	"Rscript": {"r"},
}

// binarySampleSize is the number of leading bytes read to decide text vs.
// binary, matching the 1KiB heuristic: a file is binary if that sample
// contains a NUL byte.
const binarySampleSize = 1024

// Tags returns the full tag set for path: structural tags from stat
// (file/directory/symlink/executable/text/binary) plus language tags
// derived from extension, filename, or shebang.
func Tags(path string) (map[string]bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	tags := map[string]bool{}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		tags["symlink"] = true
		return tags, nil
	case info.IsDir():
		tags["directory"] = true
		return tags, nil
	default:
		tags["file"] = true
	}

	if info.Mode()&0o111 != 0 {
		tags["executable"] = true
	}

	for tag := range extensionAndNameTags(path) {
		tags[tag] = true
	}

	binary, shebangTags := classifyContent(path)
	if binary {
		tags["binary"] = true
	} else {
		tags["text"] = true
	}
	for _, tag := range shebangTags {
		tags[tag] = true
	}

	return tags, nil
}

func extensionAndNameTags(path string) map[string]bool {
	found := map[string]bool{}
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.ToLower(filepath.Base(path))

	for tag, exts := range ExtensionTags {
		for _, e := range exts {
			if e == ext {
				found[tag] = true
				break
			}
		}
	}
	for tag, names := range FileNameTags {
		for _, n := range names {
			if n == name {
				found[tag] = true
				break
			}
		}
	}
	return found
}

// classifyContent reads up to binarySampleSize bytes of path and reports
// whether it looks binary, plus any tags implied by a shebang line.
func classifyContent(path string) (binary bool, shebangTags []string) {
	f, err := os.Open(path) // #nosec G304 -- path comes from a git-tracked file listing
	if err != nil {
		return false, nil
	}
	defer f.Close()

	sample := make([]byte, binarySampleSize)
	n, _ := f.Read(sample)
	sample = sample[:n]

	for _, b := range sample {
		if b == 0 {
			return true, nil
		}
	}

	if n > 0 && sample[0] == '#' && len(sample) > 1 && sample[1] == '!' {
		if _, err := f.Seek(0, 0); err == nil {
			scanner := bufio.NewScanner(f)
			if scanner.Scan() {
				shebangTags = ShebangTags(scanner.Text())
			}
		}
	}

	return false, shebangTags
}

// ShebangTags parses a shebang line's interpreter and returns the tags it
// implies. It handles `#!/usr/bin/env -S interpreter args`,
// `#!/usr/bin/env interpreter`, `#!/path/to/interpreter`, and unwraps a
// `nix-shell` wrapper shebang to the interpreter named in its `-i` flag.
func ShebangTags(line string) []string {
	if !strings.HasPrefix(line, "#!") {
		return nil
	}
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return nil
	}

	interpreter := filepath.Base(fields[0])
	args := fields[1:]

	if interpreter == "env" {
		for i := 0; i < len(args); i++ {
			if args[i] == "-S" && i+1 < len(args) {
				interpreter = filepath.Base(args[i+1])
				args = args[i+2:]
				break
			}
			if !strings.HasPrefix(args[i], "-") {
				interpreter = filepath.Base(args[i])
				args = args[i+1:]
				break
			}
		}
	}

	if interpreter == "nix-shell" {
		for i, a := range args {
			if a == "-i" && i+1 < len(args) {
				interpreter = filepath.Base(args[i+1])
				break
			}
		}
	}

	if tags, ok := shebangInterpreterTags[interpreter]; ok {
		return tags
	}
	return nil
}

// MatchesAny reports whether tags contains at least one entry from want.
func MatchesAny(tags map[string]bool, want []string) bool {
	for _, w := range want {
		if tags[w] {
			return true
		}
	}
	return false
}

// MatchesAll reports whether tags contains every entry in want.
func MatchesAll(tags map[string]bool, want []string) bool {
	for _, w := range want {
		if !tags[w] {
			return false
		}
	}
	return true
}

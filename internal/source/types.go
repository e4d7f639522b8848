package source

// FileID identifies a compilation unit's originating source file. The
// translator core never reads source text; the ID only tags spans so that
// diagnostics can point back at the front end's positions.
type FileID uint32

// NoFileID marks spans with no known origin (synthesized nodes).
const NoFileID FileID = 0

// IsValid reports whether the ID refers to a real file.
func (id FileID) IsValid() bool { return id != NoFileID }
